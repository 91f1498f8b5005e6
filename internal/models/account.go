package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultReminderTime is the reminder slot assigned to new accounts (UTC).
const DefaultReminderTime = "18:00:00"

// Account represents a user account in the system
type Account struct {
	Username      string `gorm:"primaryKey;size:30;not null" json:"username"`
	GoogleID      string `gorm:"uniqueIndex;size:128;not null" json:"-"`
	Email         string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`
	FullName      string `gorm:"size:255" json:"full_name"`
	GivenName     string `gorm:"size:100" json:"given_name"`
	FamilyName    string `gorm:"size:100" json:"family_name"`
	Locale        string `gorm:"size:10" json:"locale"`
	AvatarURL     string `gorm:"size:512" json:"avatar_url"`

	// Reminder settings. ReminderTime is the UTC hour the reminder job
	// matches against, stored zero-padded as "HH:00:00".
	ReminderTime             string `gorm:"size:8;not null;index;default:'18:00:00'" json:"reminder_time"`
	JournalRemindersEnabled  bool   `gorm:"not null;default:false" json:"journal_reminders_enabled"`
	HabitRemindersEnabled    bool   `gorm:"not null;default:false" json:"habit_reminders_enabled"`
	ActivityRemindersEnabled bool   `gorm:"not null;default:false" json:"activity_reminders_enabled"`

	// EncryptedRefreshToken holds the AES-encrypted OAuth refresh token.
	EncryptedRefreshToken string    `gorm:"type:text" json:"-"`
	TokenExpiry           time.Time `json:"-"`

	DateJoined time.Time      `gorm:"not null" json:"date_joined"`
	LastLogin  time.Time      `gorm:"not null" json:"last_login"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.DateJoined.IsZero() {
		a.DateJoined = now
	}
	if a.LastLogin.IsZero() {
		a.LastLogin = now
	}
	if a.ReminderTime == "" {
		a.ReminderTime = DefaultReminderTime
	}
	return nil
}

// BeforeSave hook is called before saving the account
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "account"
}

// LoginLog records a completed sign-in for auditing
type LoginLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:30;index" json:"username"`
	GoogleID  string    `gorm:"size:128;not null;index" json:"-"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for the LoginLog model
func (LoginLog) TableName() string {
	return "login_log"
}

// CompleteProfileRequest represents the data needed to finish account setup
type CompleteProfileRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
}

// UpdateReminderSettingsRequest represents a change to reminder preferences.
// ReminderHour is the UTC hour (0-23) the user wants reminders delivered.
type UpdateReminderSettingsRequest struct {
	ReminderHour             *int  `json:"reminder_hour" binding:"omitempty,min=0,max=23"`
	JournalRemindersEnabled  *bool `json:"journal_reminders_enabled"`
	HabitRemindersEnabled    *bool `json:"habit_reminders_enabled"`
	ActivityRemindersEnabled *bool `json:"activity_reminders_enabled"`
}
