package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/config"
	"github.com/adityawr/fitstudio/internal/handlers"
	"github.com/adityawr/fitstudio/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := NewRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func NewRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Static("/uploads", "./uploads")

	r.GET("/", handlers.Home)
	r.GET("/event/:id", handlers.EventDetail)
	r.GET("/trainer/:id", handlers.TrainerDetail)
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)

	events := r.Group("/events")
	events.Use(middleware.JWTAuthMiddleware())
	{
		events.GET("", handlers.ListEvents)
		events.GET("/create", handlers.NewEventForm)
		events.POST("/create", handlers.CreateEvent)
		events.GET("/:id/edit", handlers.EditEventForm)
		events.POST("/:id/edit", handlers.UpdateEvent)
		events.GET("/:id/delete", handlers.ConfirmDeleteEvent)
		events.POST("/:id/delete", handlers.DeleteEvent)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles("admin", "staff"))
	{
		adminGroup.GET("", handlers.AdminResources)
		adminGroup.POST("/trainers/:id/photo", handlers.UploadTrainerPhoto)
		adminGroup.GET("/:resource", handlers.AdminList)
		adminGroup.POST("/:resource", handlers.AdminCreate)
		adminGroup.GET("/:resource/:id", handlers.AdminDetail)
		adminGroup.PUT("/:resource/:id", handlers.AdminUpdate)
		adminGroup.DELETE("/:resource/:id", handlers.AdminDelete)
	}

	return r
}
