package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Habit represents a recurring practice a user tracks
type Habit struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"size:30;not null;index" json:"username"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// TableName specifies the table name for the Habit model
func (Habit) TableName() string {
	return "habit"
}

// HabitEntry represents the daily habit-intake submission: one row per user
// per calendar date recording which habits were completed that day.
type HabitEntry struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string         `gorm:"size:30;not null;uniqueIndex:idx_habit_entry_user_date" json:"username"`
	EntryDate   time.Time      `gorm:"type:date;not null;uniqueIndex:idx_habit_entry_user_date" json:"entry_date"`
	Completions datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"completions"` // habit ID -> completed
	Note        string         `gorm:"size:500" json:"note"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// BeforeCreate hook is called before creating a new habit entry
func (h *HabitEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the HabitEntry model
func (HabitEntry) TableName() string {
	return "habit_entry"
}

// CreateHabitRequest represents the data needed to create a new habit
type CreateHabitRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// SaveHabitEntryRequest represents a day's habit-intake submission
type SaveHabitEntryRequest struct {
	EntryDate   string          `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Completions map[string]bool `json:"completions" binding:"required"`
	Note        string          `json:"note" binding:"omitempty,max=500"`
}
