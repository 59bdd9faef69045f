package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/response"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

const unknownRoomType = "Unknown"

type Service interface {
	Revenue(ctx context.Context, f RevenueFilter) (*RevenueReport, error)
	PaymentStatus(ctx context.Context, f PaymentStatusFilter) (*PaymentStatusReport, error)
	BookingFinancials(ctx context.Context, f BookingFilter) (*BookingFinancials, error)
	Refunds(ctx context.Context, f Filter) (*RefundReport, error)
}

type service struct {
	payments     payment.Repository
	reservations reservation.Service
	rooms        room.Service
	resolver     *daterange.Resolver
}

func NewService(payments payment.Repository, reservations reservation.Service, rooms room.Service, resolver *daterange.Resolver) Service {
	return &service{
		payments:     payments,
		reservations: reservations,
		rooms:        rooms,
		resolver:     resolver,
	}
}

// window resolves the date filter and pagination into a payment filter.
func (s *service) window(f Filter) (payment.Filter, request.ListParams, error) {
	rng, err := s.resolver.Resolve(f.Preset, f.StartDate, f.EndDate)
	if err != nil {
		return payment.Filter{}, request.ListParams{}, err
	}
	params := request.ListParams{Page: f.Page, Limit: f.Limit}
	params.Normalize()
	return payment.Filter{UpdatedFrom: rng.Start, UpdatedTo: rng.End}, params, nil
}

func parseStatus(raw string) (payment.Status, error) {
	st := payment.Status(raw)
	if raw != "" && !st.Valid() {
		return "", payment.ErrInvalidStatus
	}
	return st, nil
}

func dataError(err error, filter any, msg string) error {
	return apperror.Internal(fmt.Errorf("%s with filters %+v: %w", msg, filter, err), msg)
}

func (s *service) Revenue(ctx context.Context, f RevenueFilter) (*RevenueReport, error) {
	granularity := Granularity(f.Granularity)
	if f.Granularity != "" && !granularity.Valid() {
		return nil, ErrInvalidGranularity
	}
	roomType := room.Type(f.RoomType)
	if f.RoomType != "" && !roomType.Valid() {
		return nil, ErrInvalidRoomType
	}
	status, err := parseStatus(f.Status)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = payment.StatusSuccess
	}
	pf, params, err := s.window(f.Filter)
	if err != nil {
		return nil, err
	}
	pf.Statuses = []payment.Status{status}

	if roomType != "" {
		ids, err := s.reservationIDsForType(ctx, roomType)
		if err != nil {
			return nil, dataError(err, f, "failed to fetch revenue report")
		}
		pf.ReservationIDs = ids
	}

	payments, _, err := s.payments.List(ctx, pf)
	if err != nil {
		return nil, dataError(err, pf, "failed to fetch revenue report")
	}

	var totalMinor int64
	for _, p := range payments {
		totalMinor += p.Amount
	}

	report := &RevenueReport{
		TotalRevenue: payment.ToMajor(totalMinor),
		Breakdown:    []RevenueBucket{},
		Total:        len(payments),
		Page:         params.Page,
		Limit:        params.Limit,
	}

	switch {
	case granularity != "":
		buckets := bucketByPeriod(payments, granularity)
		report.Total = len(buckets)
		report.Breakdown = response.Paginate(buckets, params.Page, params.Limit)
	case roomType != "":
		if len(payments) > 0 {
			report.Breakdown = []RevenueBucket{{RoomType: string(roomType), Amount: report.TotalRevenue}}
		}
		report.Total = len(report.Breakdown)
	}
	return report, nil
}

func (s *service) reservationIDsForType(ctx context.Context, roomType room.Type) ([]string, error) {
	rooms, err := s.rooms.List(ctx, room.Filter{Type: roomType})
	if err != nil {
		return nil, err
	}
	ids := []string{}
	if len(rooms) == 0 {
		return ids, nil
	}
	roomIDs := make([]string, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}
	reservations, _, err := s.reservations.List(ctx, reservation.Filter{RoomIDs: roomIDs})
	if err != nil {
		return nil, err
	}
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func bucketByPeriod(payments []*payment.Payment, g Granularity) []RevenueBucket {
	sums := make(map[string]int64)
	for _, p := range payments {
		sums[g.Period(p.UpdatedAt)] += p.Amount
	}
	buckets := make([]RevenueBucket, 0, len(sums))
	for period, amount := range sums {
		buckets = append(buckets, RevenueBucket{Period: period, Amount: payment.ToMajor(amount)})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })
	return buckets
}

func (s *service) PaymentStatus(ctx context.Context, f PaymentStatusFilter) (*PaymentStatusReport, error) {
	status, err := parseStatus(f.Status)
	if err != nil {
		return nil, err
	}
	pf, params, err := s.window(f.Filter)
	if err != nil {
		return nil, err
	}
	if status != "" {
		pf.Statuses = []payment.Status{status}
	}

	successCount := 0
	if status == "" || status == payment.StatusSuccess {
		successFilter := pf
		successFilter.Statuses = []payment.Status{payment.StatusSuccess}
		if successCount, err = s.payments.Count(ctx, successFilter); err != nil {
			return nil, dataError(err, successFilter, "failed to fetch payment status report")
		}
	}

	pf.Page, pf.Limit = params.Page, params.Limit
	payments, total, err := s.payments.List(ctx, pf)
	if err != nil {
		return nil, dataError(err, pf, "failed to fetch payment status report")
	}

	rate := 0.0
	if total > 0 {
		rate = float64(successCount) / float64(total) * 100
	}
	return &PaymentStatusReport{
		SuccessRate: rate,
		Payments:    payments,
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
	}, nil
}

func (s *service) BookingFinancials(ctx context.Context, f BookingFilter) (*BookingFinancials, error) {
	pf, params, err := s.window(f.Filter)
	if err != nil {
		return nil, err
	}
	pf.Statuses = []payment.Status{payment.StatusSuccess}
	if f.ReservationID != "" {
		pf.ReservationIDs = []string{f.ReservationID}
	}

	payments, _, err := s.payments.List(ctx, pf)
	if err != nil {
		return nil, dataError(err, pf, "failed to fetch booking financials")
	}

	revenue := make(map[string]int64)
	ids := []string{}
	for _, p := range payments {
		if _, seen := revenue[p.ReservationID]; !seen {
			ids = append(ids, p.ReservationID)
		}
		revenue[p.ReservationID] += p.Amount
	}

	result := &BookingFinancials{Bookings: []BookingRow{}, Page: params.Page, Limit: params.Limit}
	if len(ids) == 0 {
		return result, nil
	}

	reservations, _, err := s.reservations.List(ctx, reservation.Filter{IDs: ids})
	if err != nil {
		return nil, dataError(err, f, "failed to fetch booking financials")
	}
	roomIDs := make([]string, 0, len(reservations))
	for _, r := range reservations {
		roomIDs = append(roomIDs, r.RoomID)
	}
	roomTypes := make(map[string]string)
	if len(roomIDs) > 0 {
		rooms, err := s.rooms.List(ctx, room.Filter{IDs: roomIDs})
		if err != nil {
			return nil, dataError(err, f, "failed to fetch booking financials")
		}
		for _, rm := range rooms {
			roomTypes[rm.ID] = string(rm.Type)
		}
	}

	rows := make([]BookingRow, 0, len(reservations))
	for _, r := range reservations {
		amount := revenue[r.ID]
		if amount <= 0 {
			continue
		}
		roomType, ok := roomTypes[r.RoomID]
		if !ok {
			roomType = unknownRoomType
		}
		rows = append(rows, BookingRow{
			ReservationID: r.ID,
			GuestName:     r.GuestName,
			RoomID:        r.RoomID,
			RoomType:      roomType,
			CheckInDate:   r.CheckInDate,
			CheckOutDate:  r.CheckOutDate,
			Status:        string(r.Status),
			Revenue:       payment.ToMajor(amount),
		})
	}

	result.Total = len(rows)
	result.Bookings = response.Paginate(rows, params.Page, params.Limit)
	return result, nil
}

func (s *service) Refunds(ctx context.Context, f Filter) (*RefundReport, error) {
	pf, params, err := s.window(f)
	if err != nil {
		return nil, err
	}
	refunded := true
	pf.Refunded = &refunded
	pf.Page, pf.Limit = params.Page, params.Limit

	payments, total, err := s.payments.List(ctx, pf)
	if err != nil {
		return nil, dataError(err, pf, "failed to fetch refund report")
	}
	return &RefundReport{
		RefundCount: total,
		Payments:    payments,
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
	}, nil
}
