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

// SaveSleepEntry logs a night's sleep, keyed by the wake-up date
func SaveSleepEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.SaveSleepEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	if !req.WakeTime.After(req.BedTime) {
		handleError(c, http.StatusBadRequest, "Wake time must be after bed time",
			fmt.Errorf("wake %v not after bed %v", req.WakeTime, req.BedTime))
		return
	}

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	db := database.GetDB()
	var entry models.SleepEntry
	err = db.Where("username = ? AND entry_date = ?", username, entryDate).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to look up sleep entry", err)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.SleepEntry{
			Username:  username,
			EntryDate: entryDate,
			BedTime:   req.BedTime,
			WakeTime:  req.WakeTime,
			Quality:   req.Quality,
			Notes:     req.Notes,
		}
		if err := db.Create(&entry).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to create sleep entry", err)
			return
		}
		c.JSON(http.StatusCreated, entry)
		return
	}

	entry.BedTime = req.BedTime
	entry.WakeTime = req.WakeTime
	entry.Quality = req.Quality
	entry.Notes = req.Notes
	entry.UpdatedAt = time.Now()
	if err := db.Save(&entry).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update sleep entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetSleepEntries lists sleep logs with optional date range filters
func GetSleepEntries(c *gin.Context) {
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

	var entries []models.SleepEntry
	if err := query.Order("entry_date DESC").Limit(90).Find(&entries).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve sleep entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
