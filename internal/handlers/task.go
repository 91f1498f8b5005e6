package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTask adds a task to the user's list
func CreateTask(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	task := models.Task{
		Username:  username,
		Title:     req.Title,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if req.DueDate != "" {
		dueDate, err := parseEntryDate(req.DueDate)
		if err != nil {
			handleError(c, http.StatusBadRequest, "Invalid due date", err)
			return
		}
		task.DueDate = &dueDate
	}

	db := database.GetDB()
	if err := db.Create(&task).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks lists the user's tasks; filter with ?completed=true|false
func GetTasks(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	db := database.GetDB()
	query := db.Where("username = ?", username)

	if completed := c.Query("completed"); completed != "" {
		query = query.Where("completed = ?", completed == "true")
	}

	var tasks []models.Task
	if err := query.Order("completed ASC, due_date ASC NULLS LAST, created_at ASC").Find(&tasks).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask edits a task's title, notes, or due date
func UpdateTask(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid task ID", err)
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = nil
		} else {
			dueDate, err := parseEntryDate(*req.DueDate)
			if err != nil {
				handleError(c, http.StatusBadRequest, "Invalid due date", err)
				return
			}
			updates["due_date"] = dueDate
		}
	}

	if len(updates) == 0 {
		handleError(c, http.StatusBadRequest, "No changes provided", fmt.Errorf("empty task update"))
		return
	}
	updates["updated_at"] = time.Now()

	db := database.GetDB()
	result := db.Model(&models.Task{}).Where("id = ? AND username = ?", taskID, username).Updates(updates)
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update task", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Task not found", fmt.Errorf("no task %d for %s", taskID, username))
		return
	}

	var task models.Task
	if err := db.Where("id = ?", taskID).First(&task).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleTaskComplete flips a task between done and not done
func ToggleTaskComplete(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid task ID", err)
		return
	}

	db := database.GetDB()
	var task models.Task
	if err := db.Where("id = ? AND username = ?", taskID, username).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Task not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve task", err)
		return
	}

	task.Completed = !task.Completed
	if task.Completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.UpdatedAt = time.Now()

	if err := db.Save(&task).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func DeleteTask(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", fmt.Errorf("no username in session"))
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid task ID", err)
		return
	}

	db := database.GetDB()
	result := db.Where("id = ? AND username = ?", taskID, username).Delete(&models.Task{})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete task", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Task not found", fmt.Errorf("no task %d for %s", taskID, username))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
