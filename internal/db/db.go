package db

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mutual/internal/models"
)

// Models таблицы сервиса в порядке миграции.
var Models = []any{
	&models.EscrowConfig{},
	&models.Currency{},
	&models.Deal{},
	&models.Balance{},
	&models.Transfer{},
	&models.DealEvent{},
	&models.DealEvidence{},
	&models.Notification{},
}

func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to Postgres")
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт и обновляет таблицы.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return errors.Wrap(err, "auto migrate failed")
	}
	return nil
}
