package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class is a class type/template (e.g. "Yoga"), not a calendar occurrence.
// Scheduled occurrences are Events.
type Class struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Category        string    `gorm:"size:100;not null" json:"category"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Level           int       `gorm:"not null" json:"level"`

	Events []Event `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"events,omitempty"`

	EventsCount int `gorm:"-" json:"events_count,omitempty"`
}

func (class *Class) BeforeCreate(tx *gorm.DB) (err error) {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	return
}

func (class *Class) Decorate() {
	class.EventsCount = len(class.Events)
}
