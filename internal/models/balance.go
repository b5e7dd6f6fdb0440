package models

import (
	"time"

	"gorm.io/gorm"
	"mutual/internal/utils"
)

// Balance средства участника в валюте. AmountEscrow заблокировано в его сделках.
type Balance struct {
	ID           string    `gorm:"primaryKey;size:21" json:"-"`
	Party        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_balance_party_currency" json:"party"`
	CurrencyID   string    `gorm:"size:21;not null;uniqueIndex:idx_balance_party_currency" json:"currencyId"`
	Currency     Currency  `gorm:"foreignKey:CurrencyID" json:"-"`
	Amount       uint64    `gorm:"not null;default:0" json:"amount"`
	AmountEscrow uint64    `gorm:"not null;default:0" json:"amountEscrow"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *Balance) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID, err = utils.GenerateNanoID()
	}
	return
}
