package http

import (
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
)

type ByTaskIDRequest struct {
	TaskID string `uri:"taskId" binding:"required,uuid"`
}

type CreateTaskRequest struct {
	RoomID          string `json:"room_id" binding:"required,uuid"`
	ReservationID   string `json:"reservation_id" binding:"omitempty,uuid"`
	TaskType        string `json:"task_type" binding:"required,oneof=cleaning maintenance"`
	AssignedStaffID string `json:"assigned_staff_id" binding:"omitempty,uuid"`
	DueDate         string `json:"due_date"`
}

func (r CreateTaskRequest) Input() housekeeping.CreateInput {
	return housekeeping.CreateInput{
		RoomID:          r.RoomID,
		ReservationID:   r.ReservationID,
		TaskType:        r.TaskType,
		AssignedStaffID: r.AssignedStaffID,
		DueDate:         r.DueDate,
	}
}

// UpdateTaskRequest changes only the fields present in the body.
type UpdateTaskRequest struct {
	TaskType        *string `json:"task_type" binding:"omitempty,oneof=cleaning maintenance"`
	Status          *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	AssignedStaffID *string `json:"assigned_staff_id" binding:"omitempty,uuid"`
	DueDate         *string `json:"due_date"`
}

func (r UpdateTaskRequest) Empty() bool {
	return r.TaskType == nil && r.Status == nil && r.AssignedStaffID == nil && r.DueDate == nil
}

type ListTasksRequest struct {
	request.ListParams
	Status          string `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	RoomID          string `form:"room_id" binding:"omitempty,uuid"`
	AssignedStaffID string `form:"assigned_staff_id" binding:"omitempty,uuid"`
	StartDate       string `form:"start_date"`
	EndDate         string `form:"end_date"`
}

type TaskResponse struct {
	ID              string    `json:"id"`
	RoomID          string    `json:"room_id"`
	ReservationID   *string   `json:"reservation_id"`
	TaskType        string    `json:"task_type"`
	Status          string    `json:"status"`
	AssignedStaffID *string   `json:"assigned_staff_id"`
	DueDate         time.Time `json:"due_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func NewTaskResponse(t *housekeeping.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		RoomID:          t.RoomID,
		ReservationID:   optional(t.ReservationID),
		TaskType:        string(t.TaskType),
		Status:          string(t.Status),
		AssignedStaffID: optional(t.AssignedStaffID),
		DueDate:         t.DueDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
