package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is the metadata record for a file attached to a task; the
// bytes live in object storage under FileURL.
type Attachment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename      string    `gorm:"not null"`
	FileURL       string    `gorm:"not null"`
	FileSizeBytes int64     `gorm:"not null"`
	ContentType   string    `gorm:"not null"`
	CreatedAt     time.Time
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
