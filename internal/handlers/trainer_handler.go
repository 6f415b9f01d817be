package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/helpers"
	"github.com/adityawr/fitstudio/internal/models"
)

// TrainerDetail is the public trainer page: profile, current clubs and
// upcoming schedule.
func TrainerDetail(c *gin.Context) {
	trainerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trainer not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trainer models.Trainer
	err = gormDB.
		Preload("TrainerClubs", "is_active = ?", true).
		Preload("TrainerClubs.Club").
		Preload("Events", "status = ? AND start_at > ?", models.EventStatusScheduled, time.Now()).
		Preload("Events.Class").
		Preload("Events.Club").
		Where("id = ?", trainerID).First(&trainer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Trainer not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving trainer.")
		return
	}

	trainer.Decorate(time.Now())

	c.JSON(http.StatusOK, trainer)
}

// UploadTrainerPhoto replaces a trainer's photo. The previous file is removed
// once the new one is stored.
func UploadTrainerPhoto(c *gin.Context) {
	trainerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Trainer not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var trainer models.Trainer
	if err := gormDB.Where("id = ?", trainerID).First(&trainer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Trainer not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding trainer.")
		return
	}

	photoFile, err := c.FormFile("photo")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Photo file is required.")
		return
	}

	photoPath, err := helpers.UploadFile(c, photoFile, "trainers")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if trainer.PhotoPath != nil {
		if err := helpers.DeleteFile(*trainer.PhotoPath); err != nil {
			fmt.Printf("Error deleting old photo: %v\n", err)
		}
	}

	trainer.PhotoPath = &photoPath
	if err := gormDB.Save(&trainer).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update trainer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Photo uploaded successfully.",
		"photo_path": photoPath,
	})
}
