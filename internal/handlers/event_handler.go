package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/helpers"
	"github.com/adityawr/fitstudio/internal/models"
)

// EventDetail is the public event page: the occurrence with its class,
// trainer, club and bookings.
func EventDetail(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	err = gormDB.
		Preload("Class").Preload("Trainer").Preload("Club").Preload("Bookings").
		Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents returns every event, newest start first.
func ListEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	err := gormDB.
		Preload("Class").Preload("Trainer").Preload("Club").
		Order("start_at DESC").
		Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// NewEventForm describes an empty create form: the selectable references and
// status choices a client needs to render it.
func NewEventForm(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	options, err := eventFormOptions(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error loading form choices.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Create a new event",
		"values":  EventForm{},
		"options": options,
	})
}

func CreateEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var form EventForm
	if err := c.ShouldBind(&form); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	vals, fieldErrors := form.Validate()
	if fieldErrors == nil {
		fieldErrors = resolveEventReferences(gormDB, vals)
	}
	if len(fieldErrors) > 0 {
		helpers.RespondWithFieldErrors(c, fieldErrors, form)
		return
	}

	event := models.Event{
		ClassID:     vals.ClassID,
		TrainerID:   vals.TrainerID,
		ClubID:      vals.ClubID,
		Description: form.Description,
		StartAt:     vals.StartAt,
		EndAt:       vals.EndAt,
		Status:      vals.Status,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
		"redirect": "/events",
	})
}

// EditEventForm returns the form pre-filled from an existing event.
func EditEventForm(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	options, err := eventFormOptions(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error loading form choices.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Edit event",
		"event":   event,
		"options": options,
	})
}

func UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	var form EventForm
	if err := c.ShouldBind(&form); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	vals, fieldErrors := form.Validate()
	if fieldErrors == nil {
		fieldErrors = resolveEventReferences(gormDB, vals)
	}
	if len(fieldErrors) > 0 {
		helpers.RespondWithFieldErrors(c, fieldErrors, form)
		return
	}

	event.ClassID = vals.ClassID
	event.TrainerID = vals.TrainerID
	event.ClubID = vals.ClubID
	event.Description = form.Description
	event.StartAt = vals.StartAt
	event.EndAt = vals.EndAt
	event.Status = vals.Status

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Event updated successfully.",
		"event_id": event.ID,
		"redirect": "/events",
	})
}

// ConfirmDeleteEvent is the non-destructive half of deletion: it shows what
// would be removed and where to confirm.
func ConfirmDeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	err = gormDB.Preload("Class").Preload("Trainer").Preload("Club").
		Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Are you sure you want to delete this event?",
		"event":      event,
		"confirm_to": "/events/" + eventID.String() + "/delete",
	})
}

func DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", eventID).Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Event deleted successfully.",
		"redirect": "/events",
	})
}

// resolveEventReferences verifies that the submitted class, trainer and club
// identifiers point at existing rows.
func resolveEventReferences(gormDB *gorm.DB, vals eventFormValues) map[string]string {
	fieldErrors := make(map[string]string)

	var count int64
	gormDB.Model(&models.Class{}).Where("id = ?", vals.ClassID).Count(&count)
	if count == 0 {
		fieldErrors["class_id"] = "Select a valid class."
	}

	gormDB.Model(&models.Trainer{}).Where("id = ?", vals.TrainerID).Count(&count)
	if count == 0 {
		fieldErrors["trainer_id"] = "Select a valid trainer."
	}

	gormDB.Model(&models.Club{}).Where("id = ?", vals.ClubID).Count(&count)
	if count == 0 {
		fieldErrors["club_id"] = "Select a valid club."
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

type referenceOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func eventFormOptions(gormDB *gorm.DB) (gin.H, error) {
	var classes []models.Class
	if err := gormDB.Order("title").Find(&classes).Error; err != nil {
		return nil, err
	}
	var trainers []models.Trainer
	if err := gormDB.Order("full_name").Find(&trainers).Error; err != nil {
		return nil, err
	}
	var clubs []models.Club
	if err := gormDB.Order("name").Find(&clubs).Error; err != nil {
		return nil, err
	}

	classOptions := make([]referenceOption, 0, len(classes))
	for _, class := range classes {
		classOptions = append(classOptions, referenceOption{ID: class.ID.String(), Label: class.Title})
	}
	trainerOptions := make([]referenceOption, 0, len(trainers))
	for _, trainer := range trainers {
		trainerOptions = append(trainerOptions, referenceOption{ID: trainer.ID.String(), Label: trainer.FullName})
	}
	clubOptions := make([]referenceOption, 0, len(clubs))
	for _, club := range clubs {
		clubOptions = append(clubOptions, referenceOption{ID: club.ID.String(), Label: club.Name})
	}

	return gin.H{
		"classes":  classOptions,
		"trainers": trainerOptions,
		"clubs":    clubOptions,
		"statuses": models.EventStatuses(),
	}, nil
}
