package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wellspring/internal/auth"
	"wellspring/internal/database"
	"wellspring/internal/models"
	"wellspring/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCurrentUser returns the account for the active session
func GetCurrentUser(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		// Signed in with Google but profile not completed yet
		c.JSON(http.StatusOK, gin.H{
			"profile_complete": false,
			"email":            c.GetString("email"),
		})
		return
	}

	db := database.GetDB()
	var account models.Account
	if err := db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Account not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve account", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_complete": true,
		"account":          account,
	})
}

// CompleteProfile finishes account setup by choosing a username
func CompleteProfile(c *gin.Context) {
	googleID := c.GetString("sub")
	if googleID == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no google ID in session"))
		return
	}

	var req models.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	db := database.GetDB()
	var account models.Account
	if err := db.Where("google_id = ?", googleID).First(&account).Error; err != nil {
		handleError(c, http.StatusNotFound, "Account not found", err)
		return
	}

	if !strings.HasPrefix(account.Username, "temp-") {
		handleError(c, http.StatusConflict, "Profile already completed",
			fmt.Errorf("account %s already has a username", account.Username))
		return
	}

	if err := db.Model(&account).Update("username", req.Username).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			handleError(c, http.StatusConflict, "Username already taken", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	// Attach the chosen username to the active session
	if sessionID := c.GetString("session_id"); sessionID != "" {
		if err := auth.LinkSessionToUser(sessionID, req.Username); err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to update session", err)
			return
		}
	}

	// Greet the user; delivery problems never fail profile completion
	emailService := services.NewEmailService()
	if err := emailService.SendWelcomeEmail(account.Email, req.Username); err != nil {
		fmt.Printf("Warning: Failed to send welcome email to %s: %v\n", account.Email, err)
	}

	account.Username = req.Username
	c.JSON(http.StatusOK, account)
}

// UpdateReminderSettings changes when and which reminder emails a user receives
func UpdateReminderSettings(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.UpdateReminderSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	updates := map[string]interface{}{}
	if req.ReminderHour != nil {
		// Stored zero-padded so the hourly job can match it directly
		updates["reminder_time"] = fmt.Sprintf("%02d:00:00", *req.ReminderHour)
	}
	if req.JournalRemindersEnabled != nil {
		updates["journal_reminders_enabled"] = *req.JournalRemindersEnabled
	}
	if req.HabitRemindersEnabled != nil {
		updates["habit_reminders_enabled"] = *req.HabitRemindersEnabled
	}
	if req.ActivityRemindersEnabled != nil {
		updates["activity_reminders_enabled"] = *req.ActivityRemindersEnabled
	}

	if len(updates) == 0 {
		handleError(c, http.StatusBadRequest, "No settings provided", fmt.Errorf("empty reminder settings update"))
		return
	}
	updates["updated_at"] = time.Now()

	db := database.GetDB()
	result := db.Model(&models.Account{}).Where("username = ?", username).Updates(updates)
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update reminder settings", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Account not found", fmt.Errorf("no account for username %s", username))
		return
	}

	var account models.Account
	if err := db.Where("username = ?", username).First(&account).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve account", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UploadAvatar stores a new profile picture and saves its URL on the account
func UploadAvatar(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		handleError(c, http.StatusBadRequest, "Avatar file required", err)
		return
	}

	if err := services.ValidateAvatar(fileHeader.Filename, fileHeader.Size); err != nil {
		handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	avatars, err := services.NewAvatarService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Image uploads unavailable", err)
		return
	}

	avatarURL, err := avatars.Upload(file, username)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to upload avatar", err)
		return
	}

	db := database.GetDB()
	if err := db.Model(&models.Account{}).Where("username = ?", username).
		Update("avatar_url", avatarURL).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save avatar URL", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
}
