package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/user"
)

type Service interface {
	CreateTask(ctx context.Context, in CreateInput) (*Task, error)
	ListTasks(ctx context.Context, q ListQuery) ([]*Task, int, error)
	UpdateTask(ctx context.Context, id string, in UpdateInput) (*Task, error)
}

type service struct {
	repo      Repository
	rooms     room.Service
	users     user.Service
	notifier  notification.Service
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	rooms room.Service,
	users user.Service,
	notifier notification.Service,
	publisher events.Publisher,
	log *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		rooms:     rooms,
		users:     users,
		notifier:  notifier,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CreateTask(ctx context.Context, in CreateInput) (*Task, error) {
	taskType := TaskType(in.TaskType)
	if !taskType.Valid() {
		return nil, ErrInvalidTaskType
	}

	rm, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}

	var staff *user.User
	if in.AssignedStaffID != "" {
		if staff, err = s.staffMember(ctx, in.AssignedStaffID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	due := daterange.EndOfDay(now)
	if in.DueDate != "" {
		if due, err = daterange.ParseDate(in.DueDate); err != nil {
			return nil, ErrInvalidDueDate
		}
	}

	t := &Task{
		ID:              uuid.NewString(),
		RoomID:          rm.ID,
		ReservationID:   in.ReservationID,
		TaskType:        taskType,
		Status:          StatusPending,
		AssignedStaffID: in.AssignedStaffID,
		DueDate:         due.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.Internal(fmt.Errorf("store task for room %s: %w", rm.ID, err), "failed to create task")
	}

	if staff != nil {
		s.notifyAssignee(ctx, staff, t, rm.RoomNumber)
	}
	s.publish(ctx, events.TaskCreated, t)
	return t, nil
}

func (s *service) ListTasks(ctx context.Context, q ListQuery) ([]*Task, int, error) {
	filter := Filter{
		Status:          Status(q.Status),
		RoomID:          q.RoomID,
		AssignedStaffID: q.AssignedStaffID,
		Page:            q.Page,
		Limit:           q.Limit,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if q.StartDate != "" {
		from, err := daterange.ParseDate(q.StartDate)
		if err != nil {
			return nil, 0, ErrInvalidWindow
		}
		from = daterange.StartOfDay(from)
		filter.DueFrom = &from
	}
	if q.EndDate != "" {
		to, err := daterange.ParseDate(q.EndDate)
		if err != nil {
			return nil, 0, ErrInvalidWindow
		}
		to = daterange.EndOfDay(to)
		filter.DueTo = &to
	}
	if filter.DueFrom != nil && filter.DueTo != nil && filter.DueFrom.After(*filter.DueTo) {
		return nil, 0, ErrInvalidWindow
	}

	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Internal(err, "failed to list tasks")
	}
	return tasks, total, nil
}

func (s *service) UpdateTask(ctx context.Context, id string, in UpdateInput) (*Task, error) {
	changes := Changes{UpdatedAt: s.now()}
	if in.TaskType != nil {
		tt := TaskType(*in.TaskType)
		if !tt.Valid() {
			return nil, ErrInvalidTaskType
		}
		changes.TaskType = &tt
	}
	if in.Status != nil {
		st := Status(*in.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		changes.Status = &st
	}
	if in.DueDate != nil {
		due, err := daterange.ParseDate(*in.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		due = due.UTC()
		changes.DueDate = &due
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var staff *user.User
	if in.AssignedStaffID != nil && *in.AssignedStaffID != current.AssignedStaffID {
		if staff, err = s.staffMember(ctx, *in.AssignedStaffID); err != nil {
			return nil, err
		}
		changes.AssignedStaffID = in.AssignedStaffID
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(fmt.Errorf("update task %s: %w", id, err), "failed to update task")
	}

	justCompleted := current.Status != StatusCompleted && updated.Status == StatusCompleted
	if justCompleted && updated.TaskType == TaskCleaning {
		if err := s.rooms.UpdateStatus(ctx, updated.RoomID, room.StatusVacant); err != nil {
			return nil, apperror.Internal(fmt.Errorf("release room %s: %w", updated.RoomID, err), "failed to update room status")
		}
	}

	if staff != nil {
		roomNumber := updated.RoomID
		if rm, err := s.rooms.GetByID(ctx, updated.RoomID); err == nil {
			roomNumber = rm.RoomNumber
		}
		s.notifyAssignee(ctx, staff, updated, roomNumber)
	}
	if justCompleted {
		s.publish(ctx, events.TaskCompleted, updated)
	}
	return updated, nil
}

// staffMember loads id and requires the staff role.
func (s *service) staffMember(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidStaff
		}
		return nil, err
	}
	if u.Role != user.RoleStaff || !u.IsActive {
		return nil, ErrInvalidStaff
	}
	return u, nil
}

func (s *service) notifyAssignee(ctx context.Context, staff *user.User, t *Task, roomNumber string) {
	err := s.notifier.SendTaskAssignment(ctx, notification.TaskAssignment{
		Email:      staff.Email,
		StaffName:  staff.Name,
		TaskType:   string(t.TaskType),
		RoomNumber: roomNumber,
		DueDate:    t.DueDate,
	})
	if err != nil {
		s.log.Warn("task assignment email not sent", zap.String("task_id", t.ID), zap.String("staff_id", staff.ID), zap.Error(err))
	}
}

func (s *service) publish(ctx context.Context, eventType string, t *Task) {
	evt := events.New(eventType, t.RoomID, map[string]any{
		"task_id":   t.ID,
		"room_id":   t.RoomID,
		"task_type": t.TaskType,
		"status":    t.Status,
	})
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("publish task event failed", zap.String("type", eventType), zap.Error(err))
	}
}
