package models

import (
	"math/big"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"mutual/internal/utils"
)

// Currency токен, который можно депонировать в эскроу. Mint: base58-адрес токена.
type Currency struct {
	ID       string `gorm:"primaryKey;size:21" json:"id"`
	Symbol   string `gorm:"type:varchar(16);unique;not null" json:"symbol"`
	Mint     string `gorm:"type:varchar(64);unique;not null" json:"mint"`
	Decimals uint8  `gorm:"not null" json:"decimals"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

func (c *Currency) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID, err = utils.GenerateNanoID()
	}
	return
}

// UIAmount переводит сумму в минимальных единицах в десятичное представление.
func (c Currency) UIAmount(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -int32(c.Decimals))
}

// Units переводит десятичную сумму в минимальные единицы, отбрасывая лишние знаки.
func (c Currency) Units(amount decimal.Decimal) *big.Int {
	return amount.Shift(int32(c.Decimals)).Truncate(0).BigInt()
}
