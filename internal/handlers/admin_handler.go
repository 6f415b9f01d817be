package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/admin"
	"github.com/adityawr/fitstudio/internal/helpers"
)

// The back-office handlers are generic: they interpret the admin registry's
// per-entity descriptors instead of hand-writing screens per entity.

func AdminResources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": admin.ResourceNames()})
}

func AdminList(c *gin.Context) {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown resource.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "25")

	pageNum, err := helpers.StringToInt(page)
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(limit)
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(res.NewModel())

	if search := c.Query("search"); search != "" && len(res.SearchFields) > 0 {
		pattern := "%" + search + "%"
		conditions := make([]string, 0, len(res.SearchFields))
		args := make([]interface{}, 0, len(res.SearchFields))
		for _, field := range res.SearchFields {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", field))
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	for _, field := range res.FilterFields {
		if value := c.Query(field); value != "" {
			query = query.Where(fmt.Sprintf("%s = ?", field), value)
		}
	}

	if res.DateField != "" {
		if from := c.Query("from"); from != "" {
			fromDate, err := helpers.ParseDate(from)
			if err != nil {
				helpers.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date. Use YYYY-MM-DD.")
				return
			}
			query = query.Where(fmt.Sprintf("%s >= ?", res.DateField), fromDate)
		}
		if to := c.Query("to"); to != "" {
			toDate, err := helpers.ParseDate(to)
			if err != nil {
				helpers.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date. Use YYYY-MM-DD.")
				return
			}
			query = query.Where(fmt.Sprintf("%s < ?", res.DateField), toDate.Add(24*time.Hour))
		}
	}

	var totalCount int64
	query.Count(&totalCount)

	for _, preload := range res.ListPreloads {
		query = query.Preload(preload)
	}
	if res.DefaultOrder != "" {
		query = query.Order(res.DefaultOrder)
	}

	list := res.NewList()
	offset := (pageNum - 1) * limitNum
	if err := query.Offset(offset).Limit(limitNum).Find(list).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving records.")
		return
	}

	if res.Decorate != nil {
		res.Decorate(list)
	}

	c.JSON(http.StatusOK, gin.H{
		"resource":    res.Name,
		"records":     list,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func AdminDetail(c *gin.Context) {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown resource.")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB
	for _, preload := range res.DetailPreloads {
		query = query.Preload(preload)
	}

	record := res.NewModel()
	if err := query.Where("id = ?", recordID).First(record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving record.")
		return
	}

	if res.Decorate != nil {
		res.Decorate(record)
	}

	c.JSON(http.StatusOK, gin.H{
		"resource": res.Name,
		"record":   record,
	})
}

func AdminCreate(c *gin.Context) {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown resource.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	record := res.NewModel()
	if err := c.ShouldBindJSON(record); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if res.AfterCreate != nil {
			return res.AfterCreate(tx, record)
		}
		return nil
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create record.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Record created successfully.",
		"resource": res.Name,
		"record":   record,
	})
}

func AdminUpdate(c *gin.Context) {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown resource.")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	record := res.NewModel()
	if err := gormDB.Where("id = ?", recordID).First(record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding record.")
		return
	}

	if err := c.ShouldBindJSON(record); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	setRecordID(record, recordID)

	if err := gormDB.Save(record).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update record.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Record updated successfully.",
		"resource": res.Name,
		"record":   record,
	})
}

func AdminDelete(c *gin.Context) {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Unknown resource.")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	record := res.NewModel()
	if err := gormDB.Where("id = ?", recordID).First(record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Record not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding record.")
		return
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(record).Error; err != nil {
			return err
		}
		if res.AfterDelete != nil {
			return res.AfterDelete(tx, record)
		}
		return nil
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete record.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Record deleted successfully.",
		"resource": res.Name,
	})
}

// setRecordID restores the path identifier after binding, so a payload
// carrying a different "id" cannot redirect the write.
func setRecordID(record interface{}, id uuid.UUID) {
	field := reflect.ValueOf(record).Elem().FieldByName("ID")
	if field.IsValid() && field.CanSet() {
		field.Set(reflect.ValueOf(id))
	}
}
