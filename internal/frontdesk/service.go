package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/housekeeping"
	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

type Service interface {
	CheckIn(ctx context.Context, reservationID string) (*reservation.Reservation, error)
	CheckOut(ctx context.Context, reservationID string) (*reservation.Reservation, error)
}

type service struct {
	repo         Repository
	reservations reservation.Service
	rooms        room.Service
	tasks        housekeeping.Service
	notifier     notification.Service
	publisher    events.Publisher
	log          *zap.Logger
	now          func() time.Time
}

func NewService(
	repo Repository,
	reservations reservation.Service,
	rooms room.Service,
	tasks housekeeping.Service,
	notifier notification.Service,
	publisher events.Publisher,
	log *zap.Logger,
) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		rooms:        rooms,
		tasks:        tasks,
		notifier:     notifier,
		publisher:    publisher,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CheckIn(ctx context.Context, reservationID string) (*reservation.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusPaid {
		return nil, ErrNotPaid
	}

	now := s.now()
	late := daterange.DaysBetween(res.CheckInDate, now)
	if late < 0 {
		return nil, ErrTooEarly
	}
	if late > noShowGraceDays {
		return nil, s.cancelNoShow(ctx, res)
	}

	rm, err := s.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.Status != room.StatusVacant {
		return nil, ErrRoomNotVacant
	}

	if err := s.repo.CheckIn(ctx, res.ID, rm.ID, now); err != nil {
		return nil, transitionError(err, "failed to check in")
	}
	s.log.Info("guest checked in", zap.String("reservation_id", res.ID), zap.String("room_id", rm.ID))
	s.publish(ctx, events.ReservationCheckedIn, res.ID, rm.ID)

	return s.reload(ctx, res, reservation.StatusCheckedIn, now)
}

func (s *service) CheckOut(ctx context.Context, reservationID string) (*reservation.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusCheckedIn {
		return nil, ErrNotCheckedIn
	}

	now := s.now()
	if daterange.DaysBetween(res.CheckOutDate, now) != 0 {
		return nil, ErrNotCheckOutDay
	}

	if err := s.repo.CheckOut(ctx, res.ID, res.RoomID, now); err != nil {
		return nil, transitionError(err, "failed to check out")
	}
	s.log.Info("guest checked out", zap.String("reservation_id", res.ID), zap.String("room_id", res.RoomID))

	if _, err := s.tasks.CreateTask(ctx, housekeeping.CreateInput{
		RoomID:        res.RoomID,
		ReservationID: res.ID,
		TaskType:      string(housekeeping.TaskCleaning),
	}); err != nil {
		s.log.Error("cleaning task not created", zap.String("reservation_id", res.ID), zap.Error(err))
	}
	s.publish(ctx, events.ReservationCheckedOut, res.ID, res.RoomID)

	return s.reload(ctx, res, reservation.StatusCheckedOut, now)
}

func (s *service) cancelNoShow(ctx context.Context, res *reservation.Reservation) error {
	if err := s.reservations.UpdateStatus(ctx, res.ID, reservation.StatusCancelled); err != nil {
		return apperror.Internal(fmt.Errorf("cancel no-show reservation %s: %w", res.ID, err), "failed to cancel reservation")
	}
	if err := s.notifier.SendCancellationNotice(ctx, res, noShowReason); err != nil {
		s.log.Warn("cancellation notice not sent", zap.String("reservation_id", res.ID), zap.Error(err))
	}
	s.log.Info("reservation cancelled as no-show", zap.String("reservation_id", res.ID))
	s.publish(ctx, events.ReservationCancelled, res.ID, res.RoomID)
	return ErrNoShow
}

func transitionError(err error, msg string) error {
	if errors.Is(err, ErrStateChanged) {
		return err
	}
	return apperror.Internal(err, msg)
}

// reload fetches the stored reservation, falling back to the in-memory copy if the read fails.
func (s *service) reload(ctx context.Context, res *reservation.Reservation, status reservation.Status, at time.Time) (*reservation.Reservation, error) {
	fresh, err := s.reservations.GetByID(ctx, res.ID)
	if err == nil {
		return fresh, nil
	}
	s.log.Warn("reload reservation failed", zap.String("reservation_id", res.ID), zap.Error(err))
	cp := *res
	cp.Status = status
	if status == reservation.StatusCheckedIn {
		cp.CheckInTime = &at
	} else {
		cp.CheckOutTime = &at
	}
	return &cp, nil
}

func (s *service) publish(ctx context.Context, eventType, reservationID, roomID string) {
	evt := events.New(eventType, reservationID, map[string]any{
		"reservation_id": reservationID,
		"room_id":        roomID,
	})
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("publish reservation event failed", zap.String("type", eventType), zap.Error(err))
	}
}
