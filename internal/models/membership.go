package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusExpired MembershipStatus = "expired"
	MembershipStatusFrozen  MembershipStatus = "frozen"
)

func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusExpired, MembershipStatusFrozen:
		return true
	}
	return false
}

// UserMembership is a user's subscription to a Tariff at a Club for a date range.
type UserMembership struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User            `json:"user,omitempty"`
	TariffID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tariff_id"`
	Tariff    *Tariff          `json:"tariff,omitempty"`
	ClubID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"club_id"`
	Club      *Club            `json:"club,omitempty"`
	StartDate time.Time        `gorm:"not null" json:"start_date"`
	EndDate   time.Time        `gorm:"not null" json:"end_date"`
	Status    MembershipStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	Payments []Payment `gorm:"foreignKey:MembershipID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	// Computed on read, never persisted.
	IsCurrentlyActive bool `gorm:"-" json:"is_currently_active"`
	DaysRemaining     int  `gorm:"-" json:"days_remaining"`
}

func (membership *UserMembership) BeforeCreate(tx *gorm.DB) (err error) {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	return
}

func (membership *UserMembership) BeforeSave(tx *gorm.DB) error {
	if membership.Status == "" {
		membership.Status = MembershipStatusActive
	}
	if !membership.Status.Valid() {
		return fmt.Errorf("invalid membership status: %q", membership.Status)
	}
	return nil
}

func (membership *UserMembership) AfterFind(tx *gorm.DB) error {
	membership.Derive(time.Now())
	return nil
}

func (membership *UserMembership) Derive(now time.Time) {
	membership.IsCurrentlyActive = membership.Status == MembershipStatusActive && membership.EndDate.After(now)
	days := int(membership.EndDate.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	membership.DaysRemaining = days
}
