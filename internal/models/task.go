package models

import "time"

// TaskStatus represents the state of a field task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// ClosedTaskStatuses are the terminal states excluded from upcoming-task
// listings.
func ClosedTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusDone, TaskStatusCancelled}
}

// FieldTask is a unit of scheduled field work within a season.
type FieldTask struct {
	Base
	SeasonID      uint       `gorm:"not null;index" json:"season_id"`
	Season        *Season    `gorm:"foreignKey:SeasonID" json:"season,omitempty"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `json:"description"`
	Status        TaskStatus `gorm:"not null;default:'PENDING'" json:"status"`
	DueDate       time.Time  `gorm:"not null;index" json:"due_date"`
	PlannedDate   *time.Time `json:"planned_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	AssigneeName  string     `json:"assignee_name"`
}
