package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mutual/internal/auth"
	"mutual/internal/custody"
	"mutual/internal/escrow"
	"mutual/internal/models"
	"mutual/internal/notifications"
	"mutual/internal/services/storage"
)

type testEnv struct {
	db       *gorm.DB
	r        *gin.Engine
	engine   *escrow.Engine
	ledger   *custody.Ledger
	store    *storage.Memory
	currency models.Currency
	admin    solana.PrivateKey
	owner    solana.PrivateKey
	kol      solana.PrivateKey
	now      time.Time
}

func newKey() solana.PrivateKey { return solana.NewWallet().PrivateKey }

// setupTest создаёт in-memory БД, движок и маршруты для тестов.
// Эскроу инициализирован с 20%, у владельца 10000 USDC (в минимальных единицах 10000_000000).
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(
		&models.EscrowConfig{},
		&models.Currency{},
		&models.Deal{},
		&models.Balance{},
		&models.Transfer{},
		&models.DealEvent{},
		&models.DealEvidence{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		db:     db,
		ledger: custody.NewLedger(),
		store:  storage.NewMemory(),
		admin:  newKey(),
		owner:  newKey(),
		kol:    newKey(),
		now:    time.Now().UTC(),
	}
	env.currency = models.Currency{Symbol: "USDC", Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6, IsActive: true}
	if err := db.Create(&env.currency).Error; err != nil {
		t.Fatalf("create currency: %v", err)
	}

	env.engine = escrow.NewEngine(db, env.ledger, newKey().PublicKey())
	env.engine.SetNowFunc(func() time.Time { return env.now })
	notifications.SetDB(db)
	env.engine.SetEmitter(escrow.Emitters{notifications.Emitter{}, DealStatusEmitter{}})

	admin := env.admin.PublicKey().String()
	if _, err := env.engine.Initialize(context.Background(), admin, admin, 20); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := env.ledger.Deposit(db, env.owner.PublicKey().String(), env.currency.ID, 10_000_000_000); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	env.r = gin.New()
	Register(env.r, Deps{
		DB:      db,
		Engine:  env.engine,
		Ledger:  env.ledger,
		Storage: env.store,
		MaxSkew: time.Minute,
		Debug:   true,
	})
	return env
}

// do выполняет запрос, подписанный key. nil key отправляет запрос без подписи.
func (env *testEnv) do(t *testing.T, key solana.PrivateKey, method, path string, body any, extra map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return env.serve(t, key, req, raw, extra)
}

func (env *testEnv) serve(t *testing.T, key solana.PrivateKey, req *http.Request, raw []byte, extra map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if key != nil {
		headers, err := auth.SignRequest(key, req.Method, req.URL.RequestURI(), time.Now(), raw)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	req.Body = io.NopCloser(bytes.NewReader(raw))
	req.ContentLength = int64(len(raw))
	w := httptest.NewRecorder()
	env.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

// createDeal создаёт сделку через API от имени владельца.
func (env *testEnv) createDeal(t *testing.T, req CreateDealRequest) DealResponse {
	t.Helper()
	if req.Kol == "" {
		req.Kol = env.kol.PublicKey().String()
	}
	if req.Currency == "" {
		req.Currency = "USDC"
	}
	w := env.do(t, env.owner, http.MethodPost, "/deals", req, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create deal status %d: %s", w.Code, w.Body.String())
	}
	return decode[DealResponse](t, w)
}

func (env *testEnv) balance(t *testing.T, party string) models.Balance {
	t.Helper()
	var b models.Balance
	env.db.Where("party = ? AND currency_id = ?", party, env.currency.ID).First(&b)
	return b
}

func u64(v uint64) *uint64 { return &v }
