package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mutual/internal/custody"
	"mutual/internal/models"
)

// DefaultCurrencies токены, принимаемые в эскроу по умолчанию.
var DefaultCurrencies = []models.Currency{
	{Symbol: "USDC", Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6, IsActive: true},
	{Symbol: "USDT", Mint: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", Decimals: 6, IsActive: true},
	{Symbol: "SOL", Mint: "So11111111111111111111111111111111111111112", Decimals: 9, IsActive: true},
}

// SeedCurrencies добавляет недостающие валюты. Существующие записи не меняются.
func SeedCurrencies(db *gorm.DB, list []models.Currency) (int, error) {
	added := 0
	for _, cur := range list {
		if _, err := custody.ParsePublicKey(cur.Mint); err != nil {
			return added, errors.Wrapf(err, "currency %s", cur.Symbol)
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cur)
		if res.Error != nil {
			return added, errors.Wrapf(res.Error, "seeding %s", cur.Symbol)
		}
		added += int(res.RowsAffected)
	}
	return added, nil
}
