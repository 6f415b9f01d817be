package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tariff struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	PricePerMonth int       `gorm:"not null" json:"price_per_month"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`

	Memberships []UserMembership `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
}

func (tariff *Tariff) BeforeCreate(tx *gorm.DB) (err error) {
	if tariff.ID == uuid.Nil {
		tariff.ID = uuid.New()
	}
	return
}
