package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JournalEntry represents one day's journal for a user. At most one entry
// exists per user per calendar date; writes for an existing date update it.
type JournalEntry struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string         `gorm:"size:30;not null;uniqueIndex:idx_journal_user_date" json:"username"`
	EntryDate time.Time      `gorm:"type:date;not null;uniqueIndex:idx_journal_user_date" json:"entry_date"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	MoodLabel string         `gorm:"size:30" json:"mood_label"`
	Tags      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// BeforeCreate hook is called before creating a new journal entry
func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entry"
}

// SaveJournalEntryRequest represents the data needed to write a day's journal
type SaveJournalEntryRequest struct {
	EntryDate string   `json:"entry_date" binding:"required,datetime=2006-01-02"`
	Content   string   `json:"content" binding:"required,max=20000"`
	MoodLabel string   `json:"mood_label" binding:"omitempty,max=30"`
	Tags      []string `json:"tags" binding:"omitempty,max=20"`
}
