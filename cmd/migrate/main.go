package main

import (
	logging "github.com/ipfs/go-log/v2"

	"mutual/config"
	"mutual/internal/db"
	applog "mutual/internal/logging"
	"mutual/internal/models"
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

	migrator := gormDB.Migrator()
	indexes := []struct {
		model any
		field string
	}{
		{&models.Notification{}, "Party"},
		{&models.Notification{}, "SentAt"},
		{&models.Notification{}, "ReadAt"},
		{&models.Deal{}, "ProjectOwner"},
		{&models.Deal{}, "Kol"},
		{&models.Deal{}, "Status"},
	}
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.field) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.field); err != nil {
			log.Fatalf("create index %s failed: %v", idx.field, err)
		}
	}

	log.Info("migration completed")
}
