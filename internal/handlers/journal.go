package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wellspring/internal/database"
	"wellspring/internal/models"
	"wellspring/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SaveJournalEntry creates or updates the journal entry for a calendar date.
// One entry exists per user per date; posting the same date again replaces
// its content.
func SaveJournalEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.SaveJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to encode tags", err)
		return
	}

	db := database.GetDB()
	var entry models.JournalEntry
	err = db.Where("username = ? AND entry_date = ?", username, entryDate).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to look up journal entry", err)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.JournalEntry{
			Username:  username,
			EntryDate: entryDate,
			Content:   req.Content,
			MoodLabel: req.MoodLabel,
			Tags:      datatypes.JSON(tagsJSON),
		}
		if err := db.Create(&entry).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to create journal entry", err)
			return
		}
		c.JSON(http.StatusCreated, entry)
		return
	}

	entry.Content = req.Content
	entry.MoodLabel = req.MoodLabel
	entry.Tags = datatypes.JSON(tagsJSON)
	if err := db.Save(&entry).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update journal entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetJournalEntries lists the user's journal entries with optional date
// range filtering and pagination
func GetJournalEntries(c *gin.Context) {
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

	limit := 30
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	var entries []models.JournalEntry
	if err := query.Order("entry_date DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve journal entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetJournalEntry retrieves a single entry by date
func GetJournalEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	entryDate, err := parseEntryDate(c.Param("date"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	db := database.GetDB()
	var entry models.JournalEntry
	if err := db.Where("username = ? AND entry_date = ?", username, entryDate).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Journal entry not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve journal entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteJournalEntry removes the entry for a date
func DeleteJournalEntry(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	entryDate, err := parseEntryDate(c.Param("date"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid entry date", err)
		return
	}

	db := database.GetDB()
	result := db.Where("username = ? AND entry_date = ?", username, entryDate).Delete(&models.JournalEntry{})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete journal entry", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Journal entry not found",
			fmt.Errorf("no entry for %s on %s", username, c.Param("date")))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "journal entry deleted"})
}

// SearchJournalEntries performs ranked text search over the user's entries
func SearchJournalEntries(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	searchTerm := c.Query("q")
	if searchTerm == "" {
		handleError(c, http.StatusBadRequest, "Missing search query", fmt.Errorf("empty q parameter"))
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	searchService := services.NewJournalSearchService()
	entries, err := searchService.SearchEntries(username, searchTerm, limit, offset)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
