package frontdesk

import (
	"net/http"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotPaid        = apperror.New(http.StatusBadRequest, "reservation must be paid to check in")
	ErrTooEarly       = apperror.New(http.StatusBadRequest, "check-in is only allowed on or after the check-in date")
	ErrNoShow         = apperror.New(http.StatusConflict, "reservation cancelled due to no-show")
	ErrRoomNotVacant  = apperror.New(http.StatusBadRequest, "room is not vacant")
	ErrNotCheckedIn   = apperror.New(http.StatusBadRequest, "reservation must be checked in to check out")
	ErrNotCheckOutDay = apperror.New(http.StatusBadRequest, "check-out is only allowed on the check-out date")
	ErrStateChanged   = apperror.New(http.StatusConflict, "reservation or room changed concurrently, retry")
)

const (
	// noShowGraceDays is how many days after the check-in date a guest may still arrive.
	noShowGraceDays = 1
	noShowReason    = "No-show after check-in date"
)
