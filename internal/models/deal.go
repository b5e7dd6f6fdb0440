package models

import (
	"time"

	"gorm.io/gorm"
	"mutual/internal/utils"
)

type DealStatus string

const (
	DealStatusCreated          DealStatus = "CREATED"
	DealStatusAccepted         DealStatus = "ACCEPTED"
	DealStatusRejected         DealStatus = "REJECTED"
	DealStatusPartialCompleted DealStatus = "PARTIAL_COMPLETED"
	DealStatusCompleted        DealStatus = "COMPLETED"
	DealStatusDisputed         DealStatus = "DISPUTED"
	DealStatusResolved         DealStatus = "RESOLVED"
)

type VestingType string

const (
	VestingTypeNone      VestingType = "NONE"
	VestingTypeTime      VestingType = "TIME"
	VestingTypeMarketcap VestingType = "MARKETCAP"
)

func (v VestingType) Valid() bool {
	switch v {
	case VestingTypeNone, VestingTypeTime, VestingTypeMarketcap:
		return true
	}
	return false
}

type EligibilityStatus string

const (
	EligibilityNotEligible       EligibilityStatus = "NOT_ELIGIBLE"
	EligibilityPartiallyEligible EligibilityStatus = "PARTIALLY_ELIGIBLE"
	EligibilityFullyEligible     EligibilityStatus = "FULLY_ELIGIBLE"
)

func (e EligibilityStatus) Valid() bool {
	switch e {
	case EligibilityNotEligible, EligibilityPartiallyEligible, EligibilityFullyEligible:
		return true
	}
	return false
}

// Известные классы причин спора. Поле DisputeReason принимает и произвольные значения.
const (
	DisputeReasonUnresolved = "UNRESOLVED"
	DisputeReasonOther      = "OTHER"
)

// Deal хранит полный жизненный цикл одной сделки между владельцем проекта и KOL.
// Суммы указаны в минимальных единицах токена.
type Deal struct {
	ID                  string            `gorm:"primaryKey;size:21" json:"id"`
	Address             string            `gorm:"type:varchar(64);not null;uniqueIndex" json:"address"`
	OrderID             string            `gorm:"type:varchar(16);not null;index" json:"orderId"`
	ProjectOwner        string            `gorm:"type:varchar(64);not null;index" json:"projectOwner"`
	Kol                 string            `gorm:"type:varchar(64);not null;index" json:"kol"`
	CurrencyID          string            `gorm:"size:21;not null" json:"currencyId"`
	Currency            Currency          `gorm:"foreignKey:CurrencyID" json:"-"`
	Amount              uint64            `gorm:"not null" json:"amount"`
	ReleasedAmount      uint64            `gorm:"not null;default:0" json:"releasedAmount"`
	VestingType         VestingType       `gorm:"type:varchar(20);not null" json:"vestingType"`
	VestingDuration     int64             `gorm:"not null;default:0" json:"vestingDuration"`
	StartTime           time.Time         `gorm:"not null" json:"startTime"`
	AcceptTime          *time.Time        `json:"acceptTime"`
	DoneObligationTime  *time.Time        `json:"doneObligationTime"`
	Status              DealStatus        `gorm:"type:varchar(20);not null;index" json:"status"`
	EligibilityStatus   EligibilityStatus `gorm:"type:varchar(20);not null" json:"eligibilityStatus"`
	DisputeReason       *string           `gorm:"type:varchar(64)" json:"disputeReason,omitempty"`
	MarketcapAuthorizer *string           `gorm:"type:varchar(64)" json:"marketcapAuthorizer,omitempty"`
	Version             int64             `gorm:"not null;default:0" json:"version"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID, err = utils.GenerateNanoID()
	}
	return
}

// Remaining возвращает остаток средств сделки, ещё не выплаченный KOL.
func (d *Deal) Remaining() uint64 {
	if d.ReleasedAmount >= d.Amount {
		return 0
	}
	return d.Amount - d.ReleasedAmount
}
