package models

import "time"

// Task priority levels
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// Task statuses. Transitions are assignee-driven and deliberately
// unordered: any status may be set at any time. A task never reaches a
// terminal status; the founder archives it by deleting the row.
const (
	TaskStatusAssigned   = "ASSIGNED"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// ProjectTask is a unit of work assigned by the founder to an occupied
// member seat.
type ProjectTask struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	MemberID    uint           `gorm:"index;not null" json:"member_id"`
	Member      *ProjectMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Deadline    *time.Time     `json:"deadline"`
	Priority    string         `gorm:"size:20;default:MEDIUM" json:"priority"`
	Status      string         `gorm:"size:20;default:ASSIGNED" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (ProjectTask) TableName() string { return "project_tasks" }

// ValidTaskPriority reports whether p is a known priority value.
func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
