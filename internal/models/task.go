package models

import (
	"time"

	"gorm.io/gorm"
)

// Task represents an item in a user's task list
type Task struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"size:30;not null;index" json:"username"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Notes       string     `gorm:"size:1000" json:"notes"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	Account Account `gorm:"foreignKey:Username" json:"-"`
}

// BeforeCreate hook is called before creating a new task
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "task"
}

// CreateTaskRequest represents the data needed to create a task
type CreateTaskRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Notes   string `json:"notes" binding:"omitempty,max=1000"`
	DueDate string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest represents an edit to an existing task
type UpdateTaskRequest struct {
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Notes   *string `json:"notes" binding:"omitempty,max=1000"`
	DueDate *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}
