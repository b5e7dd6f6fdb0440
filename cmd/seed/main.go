package main

import (
	"context"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"

	"mutual/config"
	"mutual/internal/custody"
	"mutual/internal/db"
	"mutual/internal/escrow"
	applog "mutual/internal/logging"
)

var log = logging.Logger("api")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := applog.Setup(cfg.LogLevel); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	added, err := db.SeedCurrencies(gormDB, db.DefaultCurrencies)
	if err != nil {
		log.Fatalf("seed currencies failed: %v", err)
	}
	log.Infof("currencies seeded: %d new", added)

	// ESCROW_ADMIN задаёт администратора при первой инициализации
	admin := os.Getenv("ESCROW_ADMIN")
	if admin == "" {
		return
	}
	pct, err := strconv.Atoi(os.Getenv("ESCROW_MAX_CLAIMABLE_PCT"))
	if err != nil {
		log.Fatalf("ESCROW_MAX_CLAIMABLE_PCT: %v", err)
	}
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		log.Fatalf("invalid PROGRAM_ID: %v", err)
	}
	engine := escrow.NewEngine(gormDB, custody.NewLedger(), programID)
	_, err = engine.Initialize(context.Background(), admin, admin, pct)
	switch {
	case errors.Is(err, escrow.ErrAlreadyInitialized):
		log.Info("escrow already initialized")
	case err != nil:
		log.Fatalf("initialize escrow failed: %v", err)
	default:
		log.Infof("escrow initialized, admin %s, %d%%", admin, pct)
	}
}
