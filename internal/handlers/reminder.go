package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ReminderJobRunner runs one reminder pass for a "HH:00:00" time slot
type ReminderJobRunner interface {
	Run(reminderTime string)
}

var reminderJob ReminderJobRunner

// SetReminderJob wires the reminder job invoked by the trigger endpoint
func SetReminderJob(job ReminderJobRunner) {
	reminderJob = job
}

// RunReminders triggers one reminder pass for the requested UTC hour. It is
// called by the hourly cron scheduler with ?hour=0..23. The response is 200
// whether or not any candidates were found; only a malformed hour is an error.
func RunReminders(c *gin.Context) {
	// ParseUint keeps signed forms like "+5" out along with everything non-numeric
	hour, err := strconv.ParseUint(c.Query("hour"), 10, 8)
	if err != nil || hour > 23 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing hour parameter"})
		return
	}

	reminderTime := fmt.Sprintf("%02d:00:00", hour)

	if reminderJob == nil {
		log.Printf("Error: reminder job not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder job not configured"})
		return
	}
	reminderJob.Run(reminderTime)

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Reminder job executed for UTC hour %s", reminderTime)})
}
