package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaveMoodEntry logs the day's mood
func SaveMoodEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.SaveMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	db := database.GetDB()
	var entry models.MoodEntry
	err = db.Where("username = ? AND entry_date = ?", username, entryDate).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to look up mood entry", err)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.MoodEntry{
			Username:  username,
			EntryDate: entryDate,
			Score:     req.Score,
			Note:      req.Note,
		}
		if err := db.Create(&entry).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to create mood entry", err)
			return
		}
		c.JSON(http.StatusCreated, entry)
		return
	}

	entry.Score = req.Score
	entry.Note = req.Note
	entry.UpdatedAt = time.Now()
	if err := db.Save(&entry).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update mood entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetMoodEntries lists mood logs with optional date range filters
func GetMoodEntries(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	db := database.GetDB()
	query := db.Where("username = ?", username)

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		query = query.Where("entry_date >= ?", dateFrom)
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		query = query.Where("entry_date <= ?", dateTo)
	}

	var entries []models.MoodEntry
	if err := query.Order("entry_date DESC").Limit(90).Find(&entries).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve mood entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
