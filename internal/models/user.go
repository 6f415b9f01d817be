package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	Account   *Account  `gorm:"constraint:OnDelete:CASCADE" json:"account,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    string    `gorm:"size:1" json:"gender"`
	Age       *int      `json:"age"`
	Phone     string    `gorm:"size:20" json:"phone"`
	CreatedAt time.Time `json:"created_at"`

	Memberships []UserMembership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	Payments    []Payment        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Bookings    []Booking        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

func (user *User) FullName() string {
	return user.FirstName + " " + user.LastName
}
