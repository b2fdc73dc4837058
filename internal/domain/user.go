package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole distinguishes regular accounts from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is a registered account. Deleting a user cascades to all of the
// task lists and tasks it owns.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"uniqueIndex;not null"`
	PasswordHash      string    `gorm:"not null"`
	Role              UserRole  `gorm:"type:varchar(16);not null;default:user"`
	IsVerified        bool      `gorm:"not null;default:false"`
	VerificationToken *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	TaskLists []TaskList `gorm:"constraint:OnDelete:CASCADE"`
	Tasks     []Task     `gorm:"constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
