package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trainer struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName   string    `gorm:"size:150;not null" json:"full_name"`
	Experience string    `gorm:"size:150" json:"experience"`
	Speciality string    `gorm:"size:100" json:"speciality"`
	PhotoPath  *string   `json:"photo_path"`

	Events       []Event       `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	TrainerClubs []TrainerClub `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE" json:"trainer_clubs,omitempty"`

	// Display-only, filled by the admin decorate hook when associations are loaded.
	ActiveClubs    int `gorm:"-" json:"active_clubs,omitempty"`
	UpcomingEvents int `gorm:"-" json:"upcoming_events,omitempty"`
}

func (trainer *Trainer) BeforeCreate(tx *gorm.DB) (err error) {
	if trainer.ID == uuid.Nil {
		trainer.ID = uuid.New()
	}
	return
}

func (trainer *Trainer) Decorate(now time.Time) {
	trainer.ActiveClubs = 0
	for _, tc := range trainer.TrainerClubs {
		if tc.IsActive {
			trainer.ActiveClubs++
		}
	}
	trainer.UpcomingEvents = 0
	for _, event := range trainer.Events {
		if event.Status == EventStatusScheduled && event.StartAt.After(now) {
			trainer.UpcomingEvents++
		}
	}
}
