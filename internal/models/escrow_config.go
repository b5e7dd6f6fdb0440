package models

import "time"

// EscrowConfigID первичный ключ единственной записи конфигурации.
const EscrowConfigID = "escrow"

// EscrowConfig глобальные параметры развёртывания: админ и потолок частичной выплаты.
type EscrowConfig struct {
	ID                             string    `gorm:"primaryKey;size:21" json:"-"`
	Admin                          string    `gorm:"type:varchar(64);not null" json:"admin"`
	MaxClaimableAfterObligationPct uint8     `gorm:"not null" json:"maxClaimableAfterObligationPct"`
	CreatedAt                      time.Time `json:"createdAt"`
	UpdatedAt                      time.Time `json:"updatedAt"`
}
