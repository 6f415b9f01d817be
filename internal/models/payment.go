package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User           `json:"user,omitempty"`
	MembershipID uuid.UUID       `gorm:"type:uuid;not null;index;column:user_membership_id" json:"user_membership_id"`
	Membership   *UserMembership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	Status       bool            `gorm:"not null;default:false" json:"status"`
	Amount       int             `gorm:"not null" json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
