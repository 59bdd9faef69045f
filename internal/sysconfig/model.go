package sysconfig

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "configuration key not found")
	ErrKeyRequired  = apperror.New(http.StatusBadRequest, "configuration key is required")
	ErrInvalidImage = apperror.New(http.StatusBadRequest, "logo must be a PNG, JPEG or GIF image")
)

// Well-known keys read by other modules.
const (
	KeyHotelName    = "HOTEL_NAME"
	KeyHotelLogoURL = "HOTEL_LOGO_URL"
)

const (
	logoPath      = "branding/hotel-logo.png"
	logoMaxWidth  = 300
	logoMaxHeight = 300
)

// Entry is a single operator-managed setting.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// NormalizeKey trims and uppercases a key; keys are case-insensitive.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
