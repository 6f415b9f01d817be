package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusScheduled, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

func EventStatuses() []EventStatus {
	return []EventStatus{EventStatusScheduled, EventStatusCancelled, EventStatusCompleted}
}

// Event is a scheduled occurrence of a Class, bound to one Trainer and one Club.
type Event struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	ClassID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"class_id"`
	Class       *Class      `json:"class,omitempty"`
	TrainerID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"trainer_id"`
	Trainer     *Trainer    `json:"trainer,omitempty"`
	ClubID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"club_id"`
	Club        *Club       `json:"club,omitempty"`
	BookedCount uint        `gorm:"not null;default:0" json:"booked_count"`
	Description string      `gorm:"type:text" json:"description"`
	StartAt     time.Time   `json:"start_at"`
	EndAt       time.Time   `json:"end_at"`
	Status      EventStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	Bookings []Booking `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`

	// Computed on read, never persisted.
	IsUpcoming      bool `gorm:"-" json:"is_upcoming"`
	DurationMinutes *int `gorm:"-" json:"duration_minutes"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) BeforeSave(tx *gorm.DB) error {
	if event.Status == "" {
		event.Status = EventStatusScheduled
	}
	if !event.Status.Valid() {
		return fmt.Errorf("invalid event status: %q", event.Status)
	}
	return nil
}

func (event *Event) AfterFind(tx *gorm.DB) error {
	event.Derive(time.Now())
	return nil
}

// Derive fills the non-persisted display fields. Zero timestamps count as
// missing, in which case no duration is reported.
func (event *Event) Derive(now time.Time) {
	event.IsUpcoming = event.Status == EventStatusScheduled && event.StartAt.After(now)
	if event.StartAt.IsZero() || event.EndAt.IsZero() {
		event.DurationMinutes = nil
		return
	}
	minutes := int(event.EndAt.Sub(event.StartAt).Minutes())
	event.DurationMinutes = &minutes
}
