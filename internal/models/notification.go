package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"mutual/internal/utils"
)

// Notification представляет уведомление участнику сделки
// swagger:model
type Notification struct {
	ID        string          `gorm:"primaryKey;size:21" json:"id"`
	Party     string          `gorm:"type:varchar(64);not null;index" json:"party"`
	Type      string          `gorm:"type:varchar(255);not null" json:"type"`
	Payload   json.RawMessage `gorm:"type:jsonb" json:"payload" swaggertype:"object"`
	SentAt    *time.Time      `gorm:"index" json:"sentAt"`
	ReadAt    *time.Time      `gorm:"index" json:"readAt"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID, err = utils.GenerateNanoID()
	}
	return
}
