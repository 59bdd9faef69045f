package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

const defaultHotelName = "Grand Hotel"

var (
	ErrCheckInReminderWindow  = apperror.New(http.StatusConflict, "check-in reminder can only be sent one day before check-in")
	ErrCheckOutReminderWindow = apperror.New(http.StatusConflict, "check-out reminder can only be sent on the check-out date")
)

// TaskAssignment describes a housekeeping task handed to a staff member.
type TaskAssignment struct {
	Email      string
	StaffName  string
	TaskType   string
	RoomNumber string
	DueDate    time.Time
}

// InvoiceEmail carries a rendered invoice PDF to the guest.
type InvoiceEmail struct {
	Email         string
	GuestName     string
	ReservationID string
	FileName      string
	PDF           []byte
}

type Service interface {
	NotifyPaymentSuccess(ctx context.Context, email, name, reference string, amount float64) error
	NotifyPaymentFailure(ctx context.Context, email, name, reference string) error
	SendCancellationNotice(ctx context.Context, res *reservation.Reservation, reason string) error
	// SendCheckInReminder is only allowed on the day before check-in.
	SendCheckInReminder(ctx context.Context, reservationID string) error
	// SendCheckOutReminder is only allowed on the check-out day.
	SendCheckOutReminder(ctx context.Context, reservationID string) error
	SendTaskAssignment(ctx context.Context, task TaskAssignment) error
	SendInvoice(ctx context.Context, invoice InvoiceEmail) error
}

type service struct {
	mailer       Mailer
	templates    *renderer
	config       ConfigSource
	reservations reservation.Service
	rooms        room.Service
	log          *zap.Logger
	now          func() time.Time
}

func NewService(mailer Mailer, config ConfigSource, reservations reservation.Service, rooms room.Service, log *zap.Logger) (Service, error) {
	templates, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &service{
		mailer:       mailer,
		templates:    templates,
		config:       config,
		reservations: reservations,
		rooms:        rooms,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

// branding reads the hotel name and logo, falling back to defaults when unset.
func (s *service) branding(ctx context.Context) mailData {
	data := mailData{HotelName: defaultHotelName}
	if name, err := s.config.Get(ctx, sysconfig.KeyHotelName); err == nil && name != "" {
		data.HotelName = name
	} else if err != nil && !errors.Is(err, sysconfig.ErrNotFound) {
		s.log.Warn("hotel name unavailable", zap.Error(err))
	}
	if logo, err := s.config.Get(ctx, sysconfig.KeyHotelLogoURL); err == nil {
		data.LogoURL = logo
	} else if !errors.Is(err, sysconfig.ErrNotFound) {
		s.log.Warn("hotel logo unavailable", zap.Error(err))
	}
	return data
}

func (s *service) send(ctx context.Context, to, subject, page string, data mailData, attachments ...Attachment) error {
	html, err := s.templates.render(page, data)
	if err != nil {
		return apperror.Internal(err, "failed to render email")
	}
	msg := Message{To: to, Subject: subject, HTML: html, Attachments: attachments}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperror.Wrap(fmt.Errorf("send %q to %s: %w", subject, to, err), http.StatusBadGateway, "failed to send email")
	}
	s.log.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (s *service) NotifyPaymentSuccess(ctx context.Context, email, name, reference string, amount float64) error {
	data := s.branding(ctx)
	data.GuestName = name
	data.Reference = reference
	data.Amount = amount
	return s.send(ctx, email, "Payment Confirmation - "+reference, pagePaymentConfirmation, data)
}

func (s *service) NotifyPaymentFailure(ctx context.Context, email, name, reference string) error {
	data := s.branding(ctx)
	data.GuestName = name
	data.Reference = reference
	return s.send(ctx, email, "Payment Failed - "+reference, pagePaymentFailure, data)
}

func (s *service) SendCancellationNotice(ctx context.Context, res *reservation.Reservation, reason string) error {
	data := s.branding(ctx)
	data.GuestName = res.GuestName
	data.ReservationID = res.ID
	data.CheckInDate = res.CheckInDate
	data.Reason = reason
	return s.send(ctx, res.GuestEmail, "Reservation Cancelled - "+res.ID, pageCancellation, data)
}

// stayData loads the reservation and, best effort, its room.
func (s *service) stayData(ctx context.Context, reservationID string) (*reservation.Reservation, mailData, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, mailData{}, err
	}
	data := s.branding(ctx)
	data.GuestName = res.GuestName
	data.ReservationID = res.ID
	data.CheckInDate = res.CheckInDate
	data.CheckOutDate = res.CheckOutDate
	if rm, err := s.rooms.GetByID(ctx, res.RoomID); err == nil {
		data.RoomNumber = rm.RoomNumber
		data.RoomType = string(rm.Type)
	} else {
		s.log.Warn("room details unavailable for reminder", zap.String("room_id", res.RoomID), zap.Error(err))
	}
	return res, data, nil
}

func (s *service) SendCheckInReminder(ctx context.Context, reservationID string) error {
	res, data, err := s.stayData(ctx, reservationID)
	if err != nil {
		return err
	}
	if daterange.DaysBetween(s.now(), res.CheckInDate) != 1 {
		return ErrCheckInReminderWindow
	}
	return s.send(ctx, res.GuestEmail, "Check-in Reminder for "+res.ID, pageCheckInReminder, data)
}

func (s *service) SendCheckOutReminder(ctx context.Context, reservationID string) error {
	res, data, err := s.stayData(ctx, reservationID)
	if err != nil {
		return err
	}
	if daterange.DaysBetween(s.now(), res.CheckOutDate) != 0 {
		return ErrCheckOutReminderWindow
	}
	return s.send(ctx, res.GuestEmail, "Check-out Reminder for "+res.ID, pageCheckOutReminder, data)
}

func (s *service) SendTaskAssignment(ctx context.Context, task TaskAssignment) error {
	data := s.branding(ctx)
	data.StaffName = task.StaffName
	data.TaskType = task.TaskType
	data.RoomNumber = task.RoomNumber
	data.DueDate = task.DueDate
	subject := fmt.Sprintf("New Task Assignment: %s for Room %s", task.TaskType, task.RoomNumber)
	return s.send(ctx, task.Email, subject, pageTaskAssignment, data)
}

func (s *service) SendInvoice(ctx context.Context, invoice InvoiceEmail) error {
	data := s.branding(ctx)
	data.GuestName = invoice.GuestName
	data.ReservationID = invoice.ReservationID
	return s.send(ctx, invoice.Email, "Your Invoice - Reservation "+invoice.ReservationID, pageInvoice, data, Attachment{
		FileName:    invoice.FileName,
		ContentType: "application/pdf",
		Content:     invoice.PDF,
	})
}
