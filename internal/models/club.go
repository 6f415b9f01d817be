package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Club struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Address      string    `gorm:"type:text" json:"address"`
	Phone        string    `gorm:"size:20" json:"phone"`
	WorkingHours string    `gorm:"type:text" json:"working_hours"`
	Amenities    string    `gorm:"type:text" json:"amenities"`

	Memberships  []UserMembership `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	Events       []Event          `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	TrainerClubs []TrainerClub    `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE" json:"trainer_clubs,omitempty"`

	// Display-only, filled by the admin decorate hook when associations are loaded.
	ActiveTrainers int `gorm:"-" json:"active_trainers,omitempty"`
	EventsCount    int `gorm:"-" json:"events_count,omitempty"`
}

func (club *Club) BeforeCreate(tx *gorm.DB) (err error) {
	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}
	return
}

func (club *Club) Decorate() {
	club.EventsCount = len(club.Events)
	club.ActiveTrainers = 0
	for _, tc := range club.TrainerClubs {
		if tc.IsActive {
			club.ActiveTrainers++
		}
	}
}
