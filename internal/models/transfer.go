package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"mutual/internal/utils"
)

type TransferKind string

const (
	TransferKindDeposit TransferKind = "deposit"
	TransferKindFund    TransferKind = "fund"
	TransferKindRelease TransferKind = "release"
	TransferKindRefund  TransferKind = "refund"
)

// Transfer запись журнала движения средств между адресами.
// Для пополнения FromAddress пустой, Reference: внешний идентификатор перевода.
type Transfer struct {
	ID          string         `gorm:"primaryKey;size:21" json:"id"`
	DealID      *string        `gorm:"size:21;index" json:"dealId,omitempty"`
	CurrencyID  string         `gorm:"size:21;not null" json:"currencyId"`
	Currency    Currency       `gorm:"foreignKey:CurrencyID" json:"-"`
	FromAddress string         `gorm:"type:varchar(64)" json:"from"`
	ToAddress   string         `gorm:"type:varchar(64);not null" json:"to"`
	Amount      uint64         `gorm:"not null" json:"amount"`
	Kind        TransferKind   `gorm:"type:varchar(20);not null" json:"kind"`
	Reference   *string        `gorm:"type:varchar(128);uniqueIndex" json:"reference,omitempty"`
	Data        datatypes.JSON `gorm:"type:json" json:"data,omitempty" swaggertype:"object"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (t *Transfer) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID, err = utils.GenerateNanoID()
	}
	return
}
