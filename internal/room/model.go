package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid room status: must be one of Vacant, Occupied, Needs Cleaning")
	ErrInvalidType   = apperror.New(http.StatusBadRequest, "invalid room type: must be one of single, double, suite")
)

type Type string

const (
	TypeSingle Type = "single"
	TypeDouble Type = "double"
	TypeSuite  Type = "suite"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeSuite:
		return true
	}
	return false
}

type Status string

const (
	StatusVacant        Status = "Vacant"
	StatusOccupied      Status = "Occupied"
	StatusNeedsCleaning Status = "Needs Cleaning"
)

func (s Status) Valid() bool {
	switch s {
	case StatusVacant, StatusOccupied, StatusNeedsCleaning:
		return true
	}
	return false
}

// Room is a sellable unit. Rate is the nightly price in major currency units.
type Room struct {
	ID         string
	RoomNumber string
	Type       Type
	Status     Status
	Rate       float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter narrows room listings. Zero values are ignored.
type Filter struct {
	ID     string
	IDs    []string
	Type   Type
	Status Status
}
