// Package daterange turns report date presets into concrete time windows.
package daterange

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange = apperror.New(http.StatusBadRequest, "invalid custom date range: start_date and end_date must be valid dates with start_date before end_date")
	ErrPartialRange = apperror.New(http.StatusBadRequest, "start_date and end_date must be supplied together")
)

type Preset string

const (
	Today        Preset = "today"
	Last7Days    Preset = "last_7_days"
	Last14Days   Preset = "last_14_days"
	MonthToDate  Preset = "month_to_date"
	Last3Months  Preset = "last_3_months"
	Last12Months Preset = "last_12_months"
	YearToDate   Preset = "year_to_date"
	Custom       Preset = "custom"
)

// Presets lists every accepted preset, in display order.
var Presets = []Preset{Today, Last7Days, Last14Days, MonthToDate, Last3Months, Last12Months, YearToDate, Custom}

// Range is a resolved window. Both bounds are nil when no range applies.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether the range is unbounded.
func (r Range) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Resolver resolves presets against an injected clock.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a Resolver. A nil clock falls back to the UTC wall clock.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Resolver{now: now}
}

// Resolve maps a preset plus optional explicit bounds to a concrete range.
// Fixed presets ignore start and end; they always end at the current instant.
func (r *Resolver) Resolve(preset, start, end string) (Range, error) {
	p := Preset(strings.TrimSpace(preset))
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if p == Custom {
		return parseExplicit(start, end)
	}

	now := r.now()
	todayStart := StartOfDay(now)

	var from time.Time
	switch p {
	case Today:
		from = todayStart
	case Last7Days:
		from = todayStart.AddDate(0, 0, -7)
	case Last14Days:
		from = todayStart.AddDate(0, 0, -14)
	case MonthToDate:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case Last3Months:
		from = SubMonths(todayStart, 3)
	case Last12Months:
		from = SubMonths(todayStart, 12)
	case YearToDate:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		switch {
		case start == "" && end == "":
			return Range{}, nil
		case start == "" || end == "":
			return Range{}, ErrPartialRange
		}
		return parseExplicit(start, end)
	}

	return Range{Start: &from, End: &now}, nil
}

func parseExplicit(start, end string) (Range, error) {
	if start == "" || end == "" {
		return Range{}, ErrInvalidRange
	}
	from, err := ParseDate(start)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	to, err := ParseDate(end)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	if !from.Before(to) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: &from, End: &to}, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates resolve to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SubMonths moves t back by n calendar months, clamping the day to the target month's length
// (March 31 minus one month is February 28 or 29).
func SubMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return firstOfTarget.AddDate(0, 0, d-1)
}

// CalendarDay returns midnight UTC of the date t shows in its own location.
// 2025-02-03T01:00:00+08:00 maps to 2025-02-03, the same day a stay date of 2025-02-03 is stored as.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b, comparing dates only.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}
