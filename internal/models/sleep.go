package models

import (
	"time"

	"gorm.io/gorm"
)

// SleepEntry represents one night's sleep log, keyed by the wake-up date
type SleepEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:30;not null;uniqueIndex:idx_sleep_user_date" json:"username"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_sleep_user_date" json:"entry_date"`
	BedTime   time.Time `gorm:"not null" json:"bed_time"`
	WakeTime  time.Time `gorm:"not null" json:"wake_time"`
	Quality   int       `gorm:"not null" json:"quality"` // 1 (poor) to 5 (great)
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// BeforeCreate hook is called before creating a new sleep entry
func (s *SleepEntry) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	return nil
}

// Duration returns the time slept
func (s *SleepEntry) Duration() time.Duration {
	return s.WakeTime.Sub(s.BedTime)
}

// TableName specifies the table name for the SleepEntry model
func (SleepEntry) TableName() string {
	return "sleep_entry"
}

// SaveSleepEntryRequest represents the data needed to log a night's sleep
type SaveSleepEntryRequest struct {
	EntryDate string    `json:"entry_date" binding:"required,datetime=2006-01-02"`
	BedTime   time.Time `json:"bed_time" binding:"required"`
	WakeTime  time.Time `json:"wake_time" binding:"required"`
	Quality   int       `json:"quality" binding:"required,min=1,max=5"`
	Notes     string    `json:"notes" binding:"omitempty,max=500"`
}
