package notification

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type brandingConfig map[string]string

func (c brandingConfig) Get(_ context.Context, key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", sysconfig.ErrNotFound
	}
	return v, nil
}

type stubReservations struct {
	reservation.Service
	items map[string]*reservation.Reservation
}

func (s *stubReservations) GetByID(_ context.Context, id string) (*reservation.Reservation, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	return r, nil
}

type stubRooms struct {
	room.Service
	items map[string]*room.Room
}

func (s *stubRooms) GetByID(_ context.Context, id string) (*room.Room, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return r, nil
}

var fixedNow = time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, mailer *recordingMailer, config brandingConfig) Service {
	t.Helper()
	reservations := &stubReservations{items: map[string]*reservation.Reservation{
		"tomorrow": {ID: "tomorrow", RoomID: "room-1", GuestName: "Ada", GuestEmail: "ada@example.com", CheckInDate: day(2), CheckOutDate: day(4)},
		"leaving":  {ID: "leaving", RoomID: "room-gone", GuestName: "Bo", GuestEmail: "bo@example.com", CheckInDate: time.Date(2025, time.June, 28, 0, 0, 0, 0, time.UTC), CheckOutDate: day(1)},
		"later":    {ID: "later", RoomID: "room-1", GuestName: "Cy", GuestEmail: "cy@example.com", CheckInDate: day(5), CheckOutDate: day(7)},
	}}
	rooms := &stubRooms{items: map[string]*room.Room{
		"room-1": {ID: "room-1", RoomNumber: "204", Type: room.TypeSuite},
	}}
	svc, err := NewService(mailer, config, reservations, rooms, zap.NewNop())
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return fixedNow }
	return svc
}

func TestTemplatesRender(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)
	for _, page := range pages {
		html, err := r.render(page, mailData{HotelName: "Seaside Inn", GuestName: "Ada", DueDate: day(3)})
		require.NoError(t, err, page)
		assert.Contains(t, html, "Seaside Inn", page)
	}
	_, err = r.render("nope", mailData{})
	assert.Error(t, err)
}

func TestNotifyPaymentSuccessUsesBranding(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer, brandingConfig{
		sysconfig.KeyHotelName:    "Seaside Inn",
		sysconfig.KeyHotelLogoURL: "https://cdn.example.com/logo.png",
	})

	require.NoError(t, svc.NotifyPaymentSuccess(context.Background(), "ada@example.com", "Ada", "ref-1", 250.5))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Payment Confirmation - ref-1", msg.Subject)
	assert.Contains(t, msg.HTML, "Seaside Inn")
	assert.Contains(t, msg.HTML, "https://cdn.example.com/logo.png")
	assert.Contains(t, msg.HTML, "250.50")
}

func TestDefaultBranding(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer, brandingConfig{})

	require.NoError(t, svc.NotifyPaymentFailure(context.Background(), "ada@example.com", "Ada", "ref-2"))
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTML, defaultHotelName)
	assert.NotContains(t, mailer.sent[0].HTML, "<img")
}

func TestCheckInReminderWindow(t *testing.T) {
	tests := []struct {
		name          string
		reservationID string
		wantErr       error
	}{
		{"day before", "tomorrow", nil},
		{"too early", "later", ErrCheckInReminderWindow},
		{"unknown reservation", "missing", reservation.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &recordingMailer{}
			svc := newTestService(t, mailer, brandingConfig{})

			err := svc.SendCheckInReminder(context.Background(), tt.reservationID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, mailer.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, mailer.sent, 1)
			assert.Contains(t, mailer.sent[0].HTML, "204")
		})
	}
}

func TestCheckOutReminderWindow(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer, brandingConfig{})

	require.NoError(t, svc.SendCheckOutReminder(context.Background(), "leaving"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Check-out Reminder for leaving", mailer.sent[0].Subject)

	assert.ErrorIs(t, svc.SendCheckOutReminder(context.Background(), "tomorrow"), ErrCheckOutReminderWindow)
}

func TestSendInvoiceAttachesPDF(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer, brandingConfig{})

	err := svc.SendInvoice(context.Background(), InvoiceEmail{
		Email:         "ada@example.com",
		GuestName:     "Ada",
		ReservationID: "res-1",
		FileName:      "invoice-res-1.pdf",
		PDF:           []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	require.Len(t, mailer.sent[0].Attachments, 1)
	assert.Equal(t, "invoice-res-1.pdf", mailer.sent[0].Attachments[0].FileName)
	assert.Equal(t, "application/pdf", mailer.sent[0].Attachments[0].ContentType)
}

func TestTaskAssignmentSubject(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer, brandingConfig{})

	require.NoError(t, svc.SendTaskAssignment(context.Background(), TaskAssignment{
		Email: "staff@example.com", StaffName: "Sam", TaskType: "cleaning", RoomNumber: "204", DueDate: day(2),
	}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "New Task Assignment: cleaning for Room 204", mailer.sent[0].Subject)
}

func TestMailerFailureIsBadGateway(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("connection refused")}
	svc := newTestService(t, mailer, brandingConfig{})

	err := svc.SendCancellationNotice(context.Background(), &reservation.Reservation{ID: "r", GuestEmail: "a@b.c"}, "no-show")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.StatusOf(err))
}
