package models

import (
	"time"

	"gorm.io/gorm"
	"mutual/internal/utils"
)

// DealEvidence файл-доказательство, приложенный к спору.
type DealEvidence struct {
	ID          string    `gorm:"primaryKey;size:21" json:"id"`
	DealID      string    `gorm:"size:21;not null;index" json:"dealId"`
	Uploader    string    `gorm:"type:varchar(64);not null" json:"uploader"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"fileName"`
	ObjectKey   string    `gorm:"type:varchar(255);not null" json:"-"`
	URL         string    `gorm:"-" json:"url,omitempty"`
	ContentType string    `gorm:"type:varchar(127)" json:"contentType"`
	Size        int64     `gorm:"not null" json:"size"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (e *DealEvidence) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID, err = utils.GenerateNanoID()
	}
	return
}
