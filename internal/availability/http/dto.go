package http

import (
	"github.com/nekogravitycat/hotel-ops-backend/internal/availability"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

const dateLayout = "2006-01-02"

type RoomsRequest struct {
	request.ListParams
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	RoomType  string `form:"room_type"`
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	Status    string `form:"status"`
}

type RangeRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type RoomDaysRequest struct {
	RangeRequest
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
}

type SingleDateRequest struct {
	Date   string `form:"date"`
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
}

type AvailableRoomResponse struct {
	RoomID     string  `json:"room_id"`
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Status     string  `json:"status"`
	Rate       float64 `json:"rate"`
}

type RoomsResponse struct {
	Rooms []AvailableRoomResponse `json:"rooms"`
	Total int                     `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

func NewRoomsResponse(res *availability.RoomsResult) RoomsResponse {
	rooms := make([]AvailableRoomResponse, len(res.Rooms))
	for i, r := range res.Rooms {
		rooms[i] = newAvailableRoom(r)
	}
	return RoomsResponse{Rooms: rooms, Total: res.Total, Page: res.Page, Limit: res.Limit}
}

func newAvailableRoom(r *room.Room) AvailableRoomResponse {
	return AvailableRoomResponse{
		RoomID:     r.ID,
		RoomNumber: r.RoomNumber,
		RoomType:   string(r.Type),
		Status:     string(r.Status),
		Rate:       r.Rate,
	}
}

type TypeCountResponse struct {
	RoomType string `json:"room_type"`
	Count    int    `json:"count"`
}

type SummaryResponse struct {
	RoomTypes []TypeCountResponse `json:"room_types"`
}

func NewSummaryResponse(s *availability.Summary) SummaryResponse {
	types := make([]TypeCountResponse, len(s.RoomTypes))
	for i, t := range s.RoomTypes {
		types[i] = TypeCountResponse{RoomType: string(t.RoomType), Count: t.Count}
	}
	return SummaryResponse{RoomTypes: types}
}

type RoomDaysResponse struct {
	RoomID         string   `json:"room_id"`
	AvailableDates []string `json:"available_dates"`
}

func NewRoomDaysResponse(d *availability.RoomDays) RoomDaysResponse {
	dates := make([]string, len(d.AvailableDates))
	for i, day := range d.AvailableDates {
		dates[i] = day.Format(dateLayout)
	}
	return RoomDaysResponse{RoomID: d.RoomID, AvailableDates: dates}
}

type SingleDateResponse struct {
	Status        string `json:"status"`
	RoomID        string `json:"room_id,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
}

func NewSingleDateResponse(d *availability.SingleDate) SingleDateResponse {
	return SingleDateResponse{Status: string(d.Status), RoomID: d.RoomID, ReservationID: d.ReservationID}
}
