package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an API account. The PasswordHash is never serialized; handlers only
// ever read ID and IsActive after authentication.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	PasswordHash string `gorm:"type:text;not null" json:"-"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID when none was provided. Generated in the
// application rather than the database so sqlite tests behave like postgres.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
