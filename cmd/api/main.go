// @title Mutual Escrow API
// @version 1.0
// @description API эскроу и вестинга выплат KOL по промо-сделкам
// @BasePath /
// @securityDefinitions.apikey Signature
// @in header
// @name X-Signature

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	logging "github.com/ipfs/go-log/v2"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mutual/config"
	"mutual/internal/auth"
	"mutual/internal/custody"
	"mutual/internal/db"
	"mutual/internal/escrow"
	"mutual/internal/handlers"
	applog "mutual/internal/logging"
	"mutual/internal/metrics"
	"mutual/internal/notifications"
	"mutual/internal/services"
	"mutual/internal/services/storage"
	"mutual/internal/solwatcher"

	docs "mutual/docs"
)

var log = logging.Logger("api")

func main() {
	// 1. Загружаем конфиг из .env / окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := applog.Setup(cfg.LogLevel); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	// 1.1 Определяем режим запуска (dev/prod)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 2. Открываем GORM-подключение
	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	notifications.SetDB(gormDB)

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		log.Fatalf("invalid PROGRAM_ID: %v", err)
	}
	ledger := custody.NewLedger()
	engine := escrow.NewEngine(gormDB, ledger, programID)
	if vault, err := custody.VaultAuthority(programID); err == nil {
		log.Infof("program %s, vault authority %s", programID, vault)
	}

	m := metrics.New()
	emitters := escrow.Emitters{m, notifications.Emitter{}, handlers.DealStatusEmitter{}}

	// 3. Redis: распределённая блокировка сделок и кэш событий
	var (
		rdb    *redis.Client
		events *services.EventCache
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
		engine.SetLocker(escrow.NewRedisLocker(rdb, 30*time.Second, 5*time.Second))
		events = services.NewEventCache(rdb, cfg.EventCacheLimit)
		emitters = append(emitters, events)
	} else {
		log.Warn("REDIS_ADDR not set, using in-process deal locks")
	}
	engine.SetEmitter(emitters)

	st, err := storage.New(context.Background(), cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	docs.SwaggerInfo.BasePath = "/"

	// 4. Создаём Gin-роутер и регистрируем маршруты
	r := gin.New()
	r.Use(gin.Recovery(), m.Middleware())
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders,
		auth.HeaderSigner, auth.HeaderTimestamp, auth.HeaderSignature,
		auth.HeaderAttestor, auth.HeaderAttestation, auth.HeaderOTP)
	r.Use(cors.New(corsCfg))
	r.GET("/metrics", m.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.Register(r, handlers.Deps{
		DB:       gormDB,
		Redis:    rdb,
		Engine:   engine,
		Ledger:   ledger,
		Storage:  st,
		Events:   events,
		MaxSkew:  cfg.SignatureMaxSkew,
		AdminOTP: cfg.AdminTOTPSecret,
		Debug:    !cfg.IsProd(),
	})

	// 4.1 Депозиты из сети Solana
	if cfg.SolanaRPCURL != "" && len(cfg.SolanaDepositAccounts) > 0 {
		watcher, err := solwatcher.New(gormDB, ledger, cfg.SolanaRPCURL, cfg.SolanaDepositAccounts)
		if err != nil {
			log.Fatalf("solana watcher init failed: %v", err)
		}
		if err := watcher.Start(); err != nil {
			log.Fatalf("solana watcher start failed: %v", err)
		}
	}

	expirer := handlers.NewDealExpirer(engine, cfg.DealExpiry, cfg.DealExpirerInterval)
	expirer.Start()

	// 5. Запускаем сервер
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	expirer.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	if rdb != nil {
		rdb.Close()
	}
}
