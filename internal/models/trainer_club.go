package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainerClub links a Trainer to a Club. A trainer can work at several clubs;
// the flag marks whether the engagement is current.
type TrainerClub struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TrainerID uuid.UUID `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Trainer   *Trainer  `json:"trainer,omitempty"`
	ClubID    uuid.UUID `gorm:"type:uuid;not null;index" json:"club_id"`
	Club      *Club     `json:"club,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (TrainerClub) TableName() string {
	return "trainer_clubs"
}

func (tc *TrainerClub) BeforeCreate(tx *gorm.DB) (err error) {
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	return
}
