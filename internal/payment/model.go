package payment

import (
	"math"
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "payment not found")
	ErrDuplicateReference = apperror.New(http.StatusConflict, "payment reference already exists")
	ErrAlreadyPaid        = apperror.New(http.StatusConflict, "reservation is already paid")
	ErrNotPayable         = apperror.New(http.StatusConflict, "reservation is not awaiting payment")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid payment status: must be one of Pending, Success, Failed")
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

const ProviderPaystack = "Paystack"

// Payment is a gateway transaction for a reservation. Amount is in minor currency units.
type Payment struct {
	ID            string
	ReservationID string
	Email         string
	CustomerName  string
	Amount        int64
	Reference     string
	Status        Status
	Refunded      bool
	Provider      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MajorAmount returns the amount in major currency units.
func (p *Payment) MajorAmount() float64 {
	return ToMajor(p.Amount)
}

// ToMinor converts a major-unit amount to minor units, rounding to the nearest unit.
func ToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func ToMajor(amount int64) float64 {
	return float64(amount) / 100
}

// Filter narrows payment listings. UpdatedFrom and UpdatedTo are inclusive.
// A nil ReservationIDs slice means any reservation. Limit 0 disables pagination.
type Filter struct {
	Statuses       []Status
	ReservationIDs []string
	Refunded       *bool
	UpdatedFrom    *time.Time
	UpdatedTo      *time.Time
	Page           int
	Limit          int
}
