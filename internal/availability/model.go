package availability

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

var (
	ErrMissingRange  = apperror.New(http.StatusBadRequest, "missing required filters: start_date, end_date")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "start_date must be before end_date")
	ErrInvalidDate   = apperror.New(http.StatusBadRequest, "invalid date format")
	ErrMissingDate   = apperror.New(http.StatusBadRequest, "missing required filter: date")
	ErrMissingRoomID = apperror.New(http.StatusBadRequest, "missing required filter: room_id")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid room status")
	ErrInvalidType   = apperror.New(http.StatusBadRequest, "invalid room type")
	ErrRangeTooLong  = apperror.New(http.StatusBadRequest, "date range too long: at most 366 days per request")
)

// MaxRoomDays caps how many days a single room calendar request may span, both ends included.
const MaxRoomDays = 366

// Query describes a room availability search. Dates are `2006-01-02` or RFC 3339 strings.
type Query struct {
	StartDate string
	EndDate   string
	RoomType  string
	RoomID    string
	Status    string
	Page      int
	Limit     int
}

type RoomsResult struct {
	Rooms []*room.Room
	Total int
	Page  int
	Limit int
}

type TypeCount struct {
	RoomType room.Type
	Count    int
}

type Summary struct {
	RoomTypes []TypeCount
}

type RoomDays struct {
	RoomID         string
	AvailableDates []time.Time
}

type DateStatus string

const (
	DateFree   DateStatus = "free"
	DateBooked DateStatus = "booked"
)

// SingleDate answers whether a date is booked. RoomID is empty when the query
// was not scoped to a room and nothing was booked.
type SingleDate struct {
	Status        DateStatus
	RoomID        string
	ReservationID string
}
