package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

type Service interface {
	ListAvailableRooms(ctx context.Context, q Query) (*RoomsResult, error)
	GetSummary(ctx context.Context, startDate, endDate string) (*Summary, error)
	GetRoomDays(ctx context.Context, roomID, startDate, endDate string) (*RoomDays, error)
	GetSingleDate(ctx context.Context, date, roomID string) (*SingleDate, error)
}

type service struct {
	provider DataProvider
}

func NewService(provider DataProvider) Service {
	return &service{provider: provider}
}

// parseWindow validates a required start/end pair. Nothing is fetched until it passes.
// Both bounds are reduced to calendar days so they compare like the stored stay dates.
func parseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, ErrMissingRange
	}
	start, err := daterange.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := daterange.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	start, end = daterange.CalendarDay(start), daterange.CalendarDay(end)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

func occupyingFilter(roomIDs []string, w reservation.Window) reservation.Filter {
	return reservation.Filter{
		RoomIDs:     roomIDs,
		Statuses:    reservation.OccupyingStatuses,
		Overlapping: &w,
	}
}

// busyRooms returns the ids of rooms held by an occupying reservation overlapping [start, end).
func busyRooms(reservations []*reservation.Reservation, start, end time.Time) map[string]bool {
	busy := make(map[string]bool)
	for _, r := range reservations {
		if r.Status.Occupying() && r.Overlaps(start, end) {
			busy[r.RoomID] = true
		}
	}
	return busy
}

func (s *service) ListAvailableRooms(ctx context.Context, q Query) (*RoomsResult, error) {
	start, end, err := parseWindow(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	roomType := room.Type(q.RoomType)
	if roomType != "" && !roomType.Valid() {
		return nil, ErrInvalidType
	}
	status := room.Status(q.Status)
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	params := request.ListParams{Page: q.Page, Limit: q.Limit}
	params.Normalize()

	roomFilter := room.Filter{ID: q.RoomID, Type: roomType, Status: status}
	rooms, err := s.provider.ListRooms(ctx, roomFilter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list rooms with filters %+v: %w", roomFilter, err), "failed to fetch available rooms")
	}

	available := make([]*room.Room, 0, len(rooms))
	if len(rooms) > 0 {
		ids := make([]string, len(rooms))
		for i, rm := range rooms {
			ids[i] = rm.ID
		}
		resFilter := occupyingFilter(ids, reservation.Window{Start: start, End: end})
		reservations, err := s.provider.ListReservations(ctx, resFilter)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("list reservations with filters %+v: %w", resFilter, err), "failed to fetch available rooms")
		}
		busy := busyRooms(reservations, start, end)
		for _, rm := range rooms {
			if !busy[rm.ID] {
				available = append(available, rm)
			}
		}
	}

	return &RoomsResult{
		Rooms: response.Paginate(available, params.Page, params.Limit),
		Total: len(available),
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

func (s *service) GetSummary(ctx context.Context, startDate, endDate string) (*Summary, error) {
	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var (
		rooms        []*room.Room
		reservations []*reservation.Reservation
	)
	resFilter := occupyingFilter(nil, reservation.Window{Start: start, End: end})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rooms, err = s.provider.ListRooms(gctx, room.Filter{}); err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reservations, err = s.provider.ListReservations(gctx, resFilter); err != nil {
			return fmt.Errorf("list reservations with filters %+v: %w", resFilter, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err, "failed to fetch availability summary")
	}

	busy := busyRooms(reservations, start, end)
	counts := make(map[room.Type]int)
	for _, rm := range rooms {
		if !busy[rm.ID] {
			counts[rm.Type]++
		}
	}

	summary := &Summary{RoomTypes: make([]TypeCount, 0, len(counts))}
	for t, n := range counts {
		summary.RoomTypes = append(summary.RoomTypes, TypeCount{RoomType: t, Count: n})
	}
	sort.Slice(summary.RoomTypes, func(i, j int) bool {
		return summary.RoomTypes[i].RoomType < summary.RoomTypes[j].RoomType
	})
	return summary, nil
}

func (s *service) GetRoomDays(ctx context.Context, roomID, startDate, endDate string) (*RoomDays, error) {
	if roomID == "" {
		return nil, ErrMissingRoomID
	}
	first, last, err := parseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if daterange.DaysBetween(first, last)+1 > MaxRoomDays {
		return nil, ErrRangeTooLong
	}
	window := reservation.Window{Start: first, End: last.AddDate(0, 0, 1)}

	var (
		rooms        []*room.Room
		reservations []*reservation.Reservation
	)
	resFilter := occupyingFilter([]string{roomID}, window)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rooms, err = s.provider.ListRooms(gctx, room.Filter{ID: roomID}); err != nil {
			return fmt.Errorf("get room %s: %w", roomID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reservations, err = s.provider.ListReservations(gctx, resFilter); err != nil {
			return fmt.Errorf("list reservations with filters %+v: %w", resFilter, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.Internal(err, "failed to fetch room day availability")
	}
	if len(rooms) == 0 {
		return nil, room.ErrNotFound
	}

	result := &RoomDays{RoomID: roomID, AvailableDates: make([]time.Time, 0, daterange.DaysBetween(first, last)+1)}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !coveredOn(reservations, day) {
			result.AvailableDates = append(result.AvailableDates, day)
		}
	}
	return result, nil
}

func (s *service) GetSingleDate(ctx context.Context, date, roomID string) (*SingleDate, error) {
	if date == "" {
		return nil, ErrMissingDate
	}
	d, err := daterange.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	day := daterange.CalendarDay(d)

	var roomIDs []string
	if roomID != "" {
		roomIDs = []string{roomID}
	}
	resFilter := occupyingFilter(roomIDs, reservation.Window{Start: day, End: day.AddDate(0, 0, 1)})
	reservations, err := s.provider.ListReservations(ctx, resFilter)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list reservations with filters %+v: %w", resFilter, err), "failed to fetch single date availability")
	}

	for _, r := range reservations {
		if r.Status.Occupying() && r.Covers(day) && (roomID == "" || r.RoomID == roomID) {
			return &SingleDate{Status: DateBooked, RoomID: r.RoomID, ReservationID: r.ID}, nil
		}
	}
	return &SingleDate{Status: DateFree, RoomID: roomID}, nil
}

func coveredOn(reservations []*reservation.Reservation, day time.Time) bool {
	for _, r := range reservations {
		if r.Status.Occupying() && r.Covers(day) {
			return true
		}
	}
	return false
}
