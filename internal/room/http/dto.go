package http

import (
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

type RoomResponse struct {
	ID         string    `json:"id"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	Status     string    `json:"status"`
	Rate       float64   `json:"rate"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		RoomType:   string(r.Type),
		Status:     string(r.Status),
		Rate:       r.Rate,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	RoomType string `form:"room_type" binding:"omitempty,oneof=single double suite"`
	Status   string `form:"status" binding:"omitempty,oneof=Vacant Occupied 'Needs Cleaning'"`
}

// UpdateStatusRequest changes a room's housekeeping status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Vacant Occupied 'Needs Cleaning'"`
}
