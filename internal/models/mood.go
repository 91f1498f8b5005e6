package models

import (
	"time"

	"gorm.io/gorm"
)

// MoodEntry represents one day's mood log
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:30;not null;uniqueIndex:idx_mood_user_date" json:"username"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_mood_user_date" json:"entry_date"`
	Score     int       `gorm:"not null" json:"score"` // 1 (low) to 5 (high)
	Note      string    `gorm:"size:500" json:"note"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// BeforeCreate hook is called before creating a new mood entry
func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the MoodEntry model
func (MoodEntry) TableName() string {
	return "mood_entry"
}

// SaveMoodEntryRequest represents the data needed to log a day's mood
type SaveMoodEntryRequest struct {
	EntryDate string `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Score     int    `json:"score" binding:"required,min=1,max=5"`
	Note      string `json:"note" binding:"omitempty,max=500"`
}
