package housekeeping

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "task not found")
	ErrInvalidTaskType = apperror.New(http.StatusBadRequest, "invalid task type: must be one of cleaning, maintenance")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "invalid task status: must be one of pending, in_progress, completed")
	ErrInvalidStaff    = apperror.New(http.StatusBadRequest, "assigned staff not found or not a staff role")
	ErrInvalidDueDate  = apperror.New(http.StatusBadRequest, "invalid due_date")
	ErrInvalidWindow   = apperror.New(http.StatusBadRequest, "invalid due-date window")
)

type TaskType string

const (
	TaskCleaning    TaskType = "cleaning"
	TaskMaintenance TaskType = "maintenance"
)

func (t TaskType) Valid() bool {
	return t == TaskCleaning || t == TaskMaintenance
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of housekeeping work on a room. ReservationID is set for tasks raised by check-out.
type Task struct {
	ID              string
	RoomID          string
	ReservationID   string
	TaskType        TaskType
	Status          Status
	AssignedStaffID string
	DueDate         time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateInput carries raw request values; DueDate is a date or RFC 3339 timestamp.
type CreateInput struct {
	RoomID          string
	ReservationID   string
	TaskType        string
	AssignedStaffID string
	DueDate         string
}

// UpdateInput changes only the non-nil fields.
type UpdateInput struct {
	TaskType        *string
	Status          *string
	AssignedStaffID *string
	DueDate         *string
}

// Changes is the validated form of UpdateInput handed to the repository.
type Changes struct {
	TaskType        *TaskType
	Status          *Status
	AssignedStaffID *string
	DueDate         *time.Time
	UpdatedAt       time.Time
}

type ListQuery struct {
	Status          string
	RoomID          string
	AssignedStaffID string
	StartDate       string
	EndDate         string
	Page            int
	Limit           int
}

// Filter narrows task listings; DueFrom and DueTo are inclusive.
type Filter struct {
	Status          Status
	RoomID          string
	AssignedStaffID string
	DueFrom         *time.Time
	DueTo           *time.Time
	Page            int
	Limit           int
}
