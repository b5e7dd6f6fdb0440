package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"mutual/internal/utils"
)

// DealEvent неизменяемая запись журнала событий эскроу.
type DealEvent struct {
	ID        string         `gorm:"primaryKey;size:21" json:"id"`
	DealID    *string        `gorm:"size:21;index" json:"dealId,omitempty"`
	Type      string         `gorm:"type:varchar(64);not null;index" json:"type"`
	Payload   datatypes.JSON `gorm:"type:json" json:"payload" swaggertype:"object"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (e *DealEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID, err = utils.GenerateNanoID()
	}
	return
}
