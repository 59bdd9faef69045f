package http

import (
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID               string     `json:"id"`
	RoomID           string     `json:"room_id"`
	GuestName        string     `json:"guest_name"`
	GuestEmail       string     `json:"guest_email"`
	CheckInDate      string     `json:"check_in_date"`
	CheckOutDate     string     `json:"check_out_date"`
	Status           string     `json:"status"`
	Amount           float64    `json:"amount"`
	PaymentReference *string    `json:"payment_reference"`
	CheckInTime      *time.Time `json:"check_in_time"`
	CheckOutTime     *time.Time `json:"check_out_time"`
	CreatedAt        time.Time  `json:"created_at"`
}

func NewResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		RoomID:           r.RoomID,
		GuestName:        r.GuestName,
		GuestEmail:       r.GuestEmail,
		CheckInDate:      r.CheckInDate.Format(dateLayout),
		CheckOutDate:     r.CheckOutDate.Format(dateLayout),
		Status:           string(r.Status),
		Amount:           r.Amount,
		PaymentReference: r.PaymentReference,
		CheckInTime:      r.CheckInTime,
		CheckOutTime:     r.CheckOutTime,
		CreatedAt:        r.CreatedAt,
	}
}

// ListReservationsRequest defines query parameters for listing reservations.
// start_date/end_date select stays overlapping the window.
type ListReservationsRequest struct {
	request.ListParams
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending paid checked_in checked_out cancelled"`
	GuestEmail string `form:"guest_email" binding:"omitempty,email"`
	StartDate  string `form:"start_date" binding:"required_with=EndDate,omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"required_with=StartDate,omitempty,datetime=2006-01-02"`
}
