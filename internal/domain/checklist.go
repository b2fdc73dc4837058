package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checklist is a sub-list of discrete items attached to a task.
type Checklist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ChecklistItem `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Checklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChecklistItem is a single entry within a checklist. Position is
// caller-supplied and never renumbered; display order is
// (position, created_at).
type ChecklistItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChecklistID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content     string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	Position    int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
