package report

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrInvalidGranularity = apperror.New(http.StatusBadRequest, "invalid granularity: must be one of daily, weekly, monthly")
	ErrInvalidRoomType    = apperror.New(http.StatusBadRequest, "invalid room type")
)

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Period returns the bucket label of t: 2006-01-02, 2006-01 or YYYY-WW where
// WW is the Sunday-based week of the year (days before the first Sunday are week 00).
func (g Granularity) Period(t time.Time) string {
	t = t.UTC()
	switch g {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
		return t.Format("2006") + "-" + twoDigits(week)
	default:
		return t.Format("2006-01")
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

// Filter carries the date window and pagination shared by every report.
type Filter struct {
	Preset    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

type RevenueFilter struct {
	Filter
	Status      string
	RoomType    string
	Granularity string
}

type PaymentStatusFilter struct {
	Filter
	Status string
}

type BookingFilter struct {
	Filter
	ReservationID string
}

// RevenueBucket is one breakdown row, keyed by Period or by RoomType.
type RevenueBucket struct {
	Period   string
	RoomType string
	Amount   float64
}

type RevenueReport struct {
	TotalRevenue float64
	Breakdown    []RevenueBucket
	Total        int
	Page         int
	Limit        int
}

type PaymentStatusReport struct {
	SuccessRate float64
	Payments    []*payment.Payment
	Total       int
	Page        int
	Limit       int
}

type BookingRow struct {
	ReservationID string
	GuestName     string
	RoomID        string
	RoomType      string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Status        string
	Revenue       float64
}

type BookingFinancials struct {
	Bookings []BookingRow
	Total    int
	Page     int
	Limit    int
}

type RefundReport struct {
	RefundCount int
	Payments    []*payment.Payment
	Total       int
	Page        int
	Limit       int
}
