package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/helpers"
	"github.com/adityawr/fitstudio/internal/models"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Gender    string `json:"gender" binding:"omitempty,oneof=M F"`
	Age       *int   `json:"age" binding:"omitempty,gte=14,lte=100"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithFieldErrors(c, helpers.FieldErrors(err), req)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var role models.Role
	if err := gormDB.Where("name = ?", models.RoleMember).First(&role).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Default role is not seeded.")
		return
	}

	var existingAccount models.Account
	if result := gormDB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingAccount); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "An account with that username or email already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	account := models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       role.ID,
	}
	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Age:       req.Age,
		Phone:     req.Phone,
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		user.AccountID = account.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user_id": user.ID,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithFieldErrors(c, helpers.FieldErrors(err), req)
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var account models.Account
	if err := gormDB.Preload("Role").Where("email = ?", req.Email).First(&account).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	var user models.User
	if err := gormDB.Where("account_id = ?", account.ID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Profile missing for account.")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": account.ID.String(),
		"user_id":    user.ID.String(),
		"role":       account.Role.Name,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	now := time.Now()
	gormDB.Model(&account).UpdateColumn("last_login_at", now)

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":       user.ID,
			"username": account.Username,
			"email":    account.Email,
			"role":     account.Role.Name,
		},
	})
}
