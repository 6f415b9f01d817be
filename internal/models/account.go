package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account holds login identity and credentials. Profile data lives on User,
// which references its Account one-to-one.
type Account struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null" json:"role_id"`
	Role         *Role      `json:"role,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (account *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return
}
