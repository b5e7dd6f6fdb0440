package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const DefaultProgramID = "AZKJk8k26JhAKBK5GxuZGuTwdY2aor42Wotfw1kjVfWn"

// Config хранит все настройки приложения
type Config struct {
	Port     string
	DSN      string
	Env      string
	LogLevel string

	RedisAddr     string
	RedisPassword string

	ProgramID        string
	AdminTOTPSecret  string
	SignatureMaxSkew time.Duration

	DealExpiry          time.Duration
	DealExpirerInterval time.Duration
	EventCacheLimit     int64

	SolanaRPCURL          string
	SolanaDepositAccounts []string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// IsProd true для production-окружения.
func (c *Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Load читает .env (если есть) и возвращает заполненный Config
func Load() (*Config, error) {
	// Загружаем .env, если файл есть
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, errors.New("DB_DSN must be set")
	}

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		DSN:             dsn,
		Env:             getenv("APP_ENV", "dev"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ProgramID:       getenv("PROGRAM_ID", DefaultProgramID),
		AdminTOTPSecret: os.Getenv("ADMIN_TOTP_SECRET"),
		SolanaRPCURL:    os.Getenv("SOLANA_RPC_URL"),
		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     getenv("MINIO_BUCKET", "evidence"),
	}

	var err error
	if cfg.SignatureMaxSkew, err = durationEnv("SIGNATURE_MAX_SKEW", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.DealExpiry, err = durationEnv("DEAL_EXPIRY", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DealExpirerInterval, err = durationEnv("DEAL_EXPIRER_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.EventCacheLimit, err = intEnv("EVENT_CACHE_LIMIT", 100); err != nil {
		return nil, err
	}
	if v := os.Getenv("SOLANA_DEPOSIT_ACCOUNTS"); v != "" {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				cfg.SolanaDepositAccounts = append(cfg.SolanaDepositAccounts, a)
			}
		}
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if cfg.MinioUseSSL, err = strconv.ParseBool(v); err != nil {
			return nil, errors.Wrap(err, "MINIO_USE_SSL")
		}
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return d, nil
}

func intEnv(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", key)
	}
	return n, nil
}
