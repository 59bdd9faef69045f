package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "reservation not found")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid reservation status")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// OccupyingStatuses are the statuses that block a room for the length of the stay.
var OccupyingStatuses = []Status{StatusPending, StatusPaid, StatusCheckedIn}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Occupying reports whether a reservation in this status holds its room.
func (s Status) Occupying() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// Reservation is a guest stay. The room is held for the nights in [CheckInDate, CheckOutDate);
// the check-out day itself is free for a new arrival.
type Reservation struct {
	ID               string
	RoomID           string
	GuestName        string
	GuestEmail       string
	CheckInDate      time.Time
	CheckOutDate     time.Time
	Status           Status
	Amount           float64
	PaymentReference *string
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Overlaps reports whether the stay intersects the window: check_in < end AND check_out > start.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.CheckInDate.Before(end) && r.CheckOutDate.After(start)
}

// Covers reports whether the night starting on day belongs to the stay.
func (r *Reservation) Covers(day time.Time) bool {
	return !day.Before(r.CheckInDate) && day.Before(r.CheckOutDate)
}

// Window is a half-open time interval [Start, End). Bounds are midnight UTC calendar days,
// matching the date columns they are compared against.
type Window struct {
	Start time.Time
	End   time.Time
}

// Filter narrows reservation listings. A nil RoomIDs slice means any room;
// an empty non-nil slice matches nothing. Limit 0 disables pagination.
type Filter struct {
	IDs         []string
	RoomIDs     []string
	Statuses    []Status
	Overlapping *Window
	GuestEmail  string
	Page        int
	Limit       int
}
