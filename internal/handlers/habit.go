package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateHabit adds a new habit to the user's tracker
func CreateHabit(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	habit := models.Habit{
		Username:    username,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(&habit).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create habit", err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// GetHabits lists the user's habits; pass ?include_archived=true for all
func GetHabits(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	db := database.GetDB()
	query := db.Where("username = ?", username)
	if c.Query("include_archived") != "true" {
		query = query.Where("active = ?", true)
	}

	var habits []models.Habit
	if err := query.Order("created_at ASC").Find(&habits).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve habits", err)
		return
	}

	c.JSON(http.StatusOK, habits)
}

// ArchiveHabit deactivates a habit without losing its history
func ArchiveHabit(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid habit ID", err)
		return
	}

	now := time.Now()
	db := database.GetDB()
	result := db.Model(&models.Habit{}).
		Where("id = ? AND username = ?", habitID, username).
		Updates(map[string]interface{}{
			"active":      false,
			"archived_at": &now,
			"updated_at":  now,
		})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to archive habit", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Habit not found", fmt.Errorf("no habit %d for %s", habitID, username))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habit archived"})
}

// DeleteHabit removes a habit entirely
func DeleteHabit(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid habit ID", err)
		return
	}

	db := database.GetDB()
	result := db.Where("id = ? AND username = ?", habitID, username).Delete(&models.Habit{})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete habit", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Habit not found", fmt.Errorf("no habit %d for %s", habitID, username))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habit deleted"})
}

// SaveHabitEntry records the daily habit-intake submission. One submission
// exists per user per date; resubmitting a date replaces it.
func SaveHabitEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.SaveHabitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	completionsJSON, err := json.Marshal(req.Completions)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to encode completions", err)
		return
	}

	db := database.GetDB()
	var entry models.HabitEntry
	err = db.Where("username = ? AND entry_date = ?", username, entryDate).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to look up habit entry", err)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.HabitEntry{
			Username:    username,
			EntryDate:   entryDate,
			Completions: datatypes.JSON(completionsJSON),
			Note:        req.Note,
		}
		if err := db.Create(&entry).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to create habit entry", err)
			return
		}
		c.JSON(http.StatusCreated, entry)
		return
	}

	entry.Completions = datatypes.JSON(completionsJSON)
	entry.Note = req.Note
	entry.UpdatedAt = time.Now()
	if err := db.Save(&entry).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update habit entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetHabitEntries lists intake submissions with optional date range filters
func GetHabitEntries(c *gin.Context) {
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

	var entries []models.HabitEntry
	if err := query.Order("entry_date DESC").Limit(90).Find(&entries).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve habit entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
