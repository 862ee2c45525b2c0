package model

import (
	"fmt"
	"time"
)

// MaxTitleLength is the maximum number of characters in a task title.
const MaxTitleLength = 255

// Task is a todo item owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskStatus filters tasks by completion state.
type TaskStatus string

// Task status filter values.
const (
	TaskStatusAll       TaskStatus = "all"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// ParseTaskStatus converts a query value into a TaskStatus.
// An empty value means no filter.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case "", TaskStatusAll:
		return TaskStatusAll, nil
	case TaskStatusPending, TaskStatusCompleted:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

// CompletedFilter returns the completed value to filter on, or nil for no filter.
func (s TaskStatus) CompletedFilter() *bool {
	var v bool
	switch s {
	case TaskStatusPending:
		v = false
	case TaskStatusCompleted:
		v = true
	default:
		return nil
	}
	return &v
}

// TaskChanges holds the subset of task fields supplied in an update.
// Nil fields are left unchanged. ClearDescription sets the description
// to null and takes precedence over Description.
type TaskChanges struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Completed        *bool
}
