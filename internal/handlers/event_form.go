package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/adityawr/fitstudio/internal/helpers"
	"github.com/adityawr/fitstudio/internal/models"
)

// EventForm carries raw event form input. Everything arrives as strings so a
// failed submission can be echoed back exactly as the user typed it.
type EventForm struct {
	ClassID     string `form:"class_id" json:"class_id"`
	TrainerID   string `form:"trainer_id" json:"trainer_id"`
	ClubID      string `form:"club_id" json:"club_id"`
	StartAt     string `form:"start_at" json:"start_at"`
	EndAt       string `form:"end_at" json:"end_at"`
	Description string `form:"description" json:"description"`
	Status      string `form:"status" json:"status"`
}

type eventFormValues struct {
	ClassID   uuid.UUID
	TrainerID uuid.UUID
	ClubID    uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	Status    models.EventStatus
}

// Validate checks field syntax: required fields present, identifiers and
// timestamps well-formed, status within the enum. Reference existence is the
// handler's job since it needs the database.
func (f *EventForm) Validate() (eventFormValues, map[string]string) {
	var vals eventFormValues
	fieldErrors := make(map[string]string)

	vals.ClassID = parseReference(f.ClassID, "class_id", fieldErrors)
	vals.TrainerID = parseReference(f.TrainerID, "trainer_id", fieldErrors)
	vals.ClubID = parseReference(f.ClubID, "club_id", fieldErrors)

	if f.StartAt == "" {
		fieldErrors["start_at"] = "This field is required."
	} else if t, err := helpers.ParseTimestamp(f.StartAt); err != nil {
		fieldErrors["start_at"] = "Enter a valid date and time."
	} else {
		vals.StartAt = t
	}

	if f.EndAt == "" {
		fieldErrors["end_at"] = "This field is required."
	} else if t, err := helpers.ParseTimestamp(f.EndAt); err != nil {
		fieldErrors["end_at"] = "Enter a valid date and time."
	} else {
		vals.EndAt = t
	}

	vals.Status = models.EventStatusScheduled
	if f.Status != "" {
		status := models.EventStatus(f.Status)
		if !status.Valid() {
			fieldErrors["status"] = "Select a valid status."
		} else {
			vals.Status = status
		}
	}

	if len(fieldErrors) > 0 {
		return vals, fieldErrors
	}
	return vals, nil
}

func parseReference(raw, field string, fieldErrors map[string]string) uuid.UUID {
	if raw == "" {
		fieldErrors[field] = "This field is required."
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fieldErrors[field] = "Select a valid choice."
		return uuid.Nil
	}
	return id
}
