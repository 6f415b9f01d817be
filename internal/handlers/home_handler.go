package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/helpers"
	"github.com/adityawr/fitstudio/internal/models"
)

type TariffSummary struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	PricePerMonth          int       `json:"price_per_month"`
	IsActive               bool      `json:"is_active"`
	ActiveMembershipsCount int64     `json:"active_memberships_count"`
}

type CategorySummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	EventCount  int64     `json:"event_count"`
	AvgDuration float64   `json:"avg_duration"`
	AvgLevel    float64   `json:"avg_level"`
}

// Home backs the public landing page: upcoming schedule, club and trainer
// samples, tariff and category highlights, and the headline counters.
func Home(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var latestEvents []models.Event
	err := gormDB.
		Preload("Class").Preload("Trainer").Preload("Club").
		Where("status = ?", models.EventStatusScheduled).
		Order("start_at ASC").
		Limit(5).
		Find(&latestEvents).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving upcoming events.")
		return
	}

	var clubs []models.Club
	if err := gormDB.Order("name, id").Limit(5).Find(&clubs).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving clubs.")
		return
	}

	var trainers []models.Trainer
	if err := gormDB.Order("full_name, id").Limit(6).Find(&trainers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving trainers.")
		return
	}

	var activeTariffs []TariffSummary
	err = gormDB.Model(&models.Tariff{}).
		Select("tariffs.id, tariffs.name, tariffs.price_per_month, tariffs.is_active, COUNT(CASE WHEN user_memberships.status = 'active' THEN 1 END) AS active_memberships_count").
		Joins("LEFT JOIN user_memberships ON user_memberships.tariff_id = tariffs.id").
		Where("tariffs.is_active = ?", true).
		Group("tariffs.id").
		Limit(4).
		Scan(&activeTariffs).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tariffs.")
		return
	}

	// Inner join keeps only classes with at least one event.
	var popularCategories []CategorySummary
	err = gormDB.Model(&models.Class{}).
		Select("classes.id, classes.title, classes.category, COUNT(events.id) AS event_count, AVG(classes.duration_minutes) AS avg_duration, AVG(classes.level) AS avg_level").
		Joins("JOIN events ON events.class_id = classes.id").
		Group("classes.id").
		Order("event_count DESC").
		Limit(4).
		Scan(&popularCategories).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving popular categories.")
		return
	}

	var totalMembers, totalTrainers, totalCompleted, clubsCount int64
	gormDB.Model(&models.UserMembership{}).Where("status = ?", models.MembershipStatusActive).Count(&totalMembers)
	gormDB.Model(&models.Trainer{}).Count(&totalTrainers)
	gormDB.Model(&models.Event{}).Where("status = ?", models.EventStatusCompleted).Count(&totalCompleted)
	gormDB.Model(&models.Club{}).Count(&clubsCount)

	c.JSON(http.StatusOK, gin.H{
		"latest_events":      latestEvents,
		"clubs":              clubs,
		"trainers":           trainers,
		"active_tariffs":     activeTariffs,
		"popular_categories": popularCategories,
		"total_members":      totalMembers,
		"total_trainers":     totalTrainers,
		"total_classes":      totalCompleted,
		"clubs_count":        clubsCount,
	})
}
