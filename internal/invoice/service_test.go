package invoice

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/storage"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

type memRepo struct {
	items map[string]*Invoice
}

func (r *memRepo) Create(_ context.Context, inv *Invoice) error {
	cp := *inv
	r.items[inv.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Invoice, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

type fakeRenderer struct {
	calls []string
	err   error
}

func (r *fakeRenderer) Render(_ context.Context, html string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.calls = append(r.calls, html)
	return []byte("%PDF-1.7 " + html[:16]), nil
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

type stubPayments struct {
	payment.Repository
	items map[string]*payment.Payment
}

func (s *stubPayments) GetByReference(_ context.Context, ref string) (*payment.Payment, error) {
	p, ok := s.items[ref]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return p, nil
}

type stubRooms struct {
	room.Service
}

func (stubRooms) GetByID(_ context.Context, id string) (*room.Room, error) {
	if id != "room-1" {
		return nil, room.ErrNotFound
	}
	return &room.Room{ID: id, RoomNumber: "301", Type: room.TypeDouble, Rate: 120}, nil
}

type stubReports struct {
	report.Service
	revenueFilter report.RevenueFilter
}

func (s *stubReports) Revenue(_ context.Context, f report.RevenueFilter) (*report.RevenueReport, error) {
	s.revenueFilter = f
	return &report.RevenueReport{
		TotalRevenue: 1234.5,
		Breakdown:    []report.RevenueBucket{{Period: "2025-06", Amount: 1234.5}},
		Total:        1, Page: 1, Limit: f.Limit,
	}, nil
}

func (s *stubReports) Refunds(_ context.Context, f report.Filter) (*report.RefundReport, error) {
	return &report.RefundReport{Page: f.Page, Limit: f.Limit}, nil
}

type recordingNotifier struct {
	notification.Service
	invoices []notification.InvoiceEmail
}

func (n *recordingNotifier) SendInvoice(_ context.Context, inv notification.InvoiceEmail) error {
	n.invoices = append(n.invoices, inv)
	return nil
}

type configMap map[string]string

func (c configMap) Get(_ context.Context, key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", sysconfig.ErrNotFound
	}
	return v, nil
}

var fixedNow = time.Date(2025, time.July, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	repo     *memRepo
	renderer *fakeRenderer
	store    *storage.LocalStorage
	reports  *stubReports
	notifier *recordingNotifier
	comp     *Compressor
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)
	comp, err := NewCompressor()
	require.NoError(t, err)

	ref := "ref-paid"
	f := &fixture{
		repo:     &memRepo{items: map[string]*Invoice{}},
		renderer: &fakeRenderer{},
		store:    store,
		reports:  &stubReports{},
		notifier: &recordingNotifier{},
		comp:     comp,
	}
	svc, err := NewService(Deps{
		Repo: f.repo,
		Reservations: &stubReservations{items: map[string]*reservation.Reservation{
			"res-paid": {
				ID: "res-paid", RoomID: "room-1", GuestName: "Ada Lovelace", GuestEmail: "ada@example.com",
				CheckInDate: time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC), CheckOutDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				Status: reservation.StatusPaid, Amount: 360, PaymentReference: &ref,
			},
			"res-unpaid": {ID: "res-unpaid", RoomID: "room-1", Status: reservation.StatusPending},
		}},
		Payments: &stubPayments{items: map[string]*payment.Payment{
			ref: {ID: "p1", ReservationID: "res-paid", Amount: 36000, Reference: ref, Status: payment.StatusSuccess, UpdatedAt: fixedNow},
		}},
		Rooms:      stubRooms{},
		Reports:    f.reports,
		Notifier:   f.notifier,
		Config:     configMap{sysconfig.KeyHotelName: "Harbour Hotel"},
		Storage:    store,
		Renderer:   f.renderer,
		Compressor: comp,
		Log:        zap.NewNop(),
	})
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func TestGenerateInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.GenerateInvoice(ctx, "res-paid", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "invoice-res-paid.pdf", inv.FileName)
	assert.Equal(t, TypeInvoice, inv.Type)
	assert.Equal(t, "user-1", inv.GeneratedBy)
	assert.Equal(t, fixedNow, inv.GeneratedAt)

	stored, ok := f.repo.items[inv.ID]
	require.True(t, ok)
	html, err := f.comp.Decompress(stored.CompressedHTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ada Lovelace")
	assert.Contains(t, string(html), "Harbour Hotel")
	assert.Contains(t, string(html), "360.00")
	assert.Contains(t, string(html), "<td>3</td>")

	rc, err := f.store.Get(ctx, inv.StoragePath)
	require.NoError(t, err)
	rc.Close()
}

func TestGenerateInvoiceErrors(t *testing.T) {
	tests := []struct {
		name          string
		reservationID string
		want          error
	}{
		{"unknown reservation", "missing", reservation.ErrNotFound},
		{"no payment yet", "res-unpaid", ErrPaymentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.GenerateInvoice(context.Background(), tt.reservationID, "")
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.repo.items)
		})
	}
}

func TestGenerateInvoiceRendererFailure(t *testing.T) {
	f := newFixture(t)
	f.renderer.err = errors.New("gotenberg unavailable")

	_, err := f.svc.GenerateInvoice(context.Background(), "res-paid", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.StatusOf(err))
	assert.Empty(t, f.repo.items)
}

func TestGenerateReport(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.GenerateReport(context.Background(), TypeRevenueReport, ReportFilters{
		Preset:      "last_7_days",
		Granularity: "monthly",
	}, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "revenue-report-2025-07-01.pdf", inv.FileName)
	assert.Empty(t, inv.ReservationID)
	assert.Equal(t, map[string]string{"preset": "last_7_days", "granularity": "monthly"}, inv.Filters)
	assert.Equal(t, 1, f.reports.revenueFilter.Page)
	assert.Equal(t, 100, f.reports.revenueFilter.Limit)
	assert.Equal(t, "monthly", f.reports.revenueFilter.Granularity)

	require.Len(t, f.renderer.calls, 1)
	assert.Contains(t, f.renderer.calls[0], "1234.50")
	assert.Contains(t, f.renderer.calls[0], "Revenue Report")
}

func TestGenerateReportRejectsTypes(t *testing.T) {
	tests := []struct {
		typ  Type
		want error
	}{
		{TypeBookingFinancials, ErrUnsupportedReportType},
		{TypeAvailabilityReport, ErrUnsupportedReportType},
		{TypeInvoice, ErrInvalidType},
		{Type("tax_report"), ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.GenerateReport(context.Background(), tt.typ, ReportFilters{}, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.GenerateInvoice(ctx, "res-paid", "")
	require.NoError(t, err)

	doc, err := f.svc.GetPDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-res-paid.pdf", doc.FileName)
	assert.Contains(t, string(doc.Content), "%PDF-1.7")

	_, err = f.svc.GetPDF(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPDFRegeneratesLostFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.svc.GenerateInvoice(ctx, "res-paid", "")
	require.NoError(t, err)
	require.NoError(t, f.store.Delete(ctx, inv.StoragePath))

	doc, err := f.svc.GetPDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Content), "%PDF-1.7")
	require.Len(t, f.renderer.calls, 2)
	assert.Equal(t, f.renderer.calls[0], f.renderer.calls[1])

	rc, err := f.store.Get(ctx, inv.StoragePath)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, doc.Content, body)
}

func TestIssueInvoiceEmailsPDF(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.IssueInvoice(context.Background(), "res-paid", "user-1"))

	require.Len(t, f.notifier.invoices, 1)
	sent := f.notifier.invoices[0]
	assert.Equal(t, "ada@example.com", sent.Email)
	assert.Equal(t, "invoice-res-paid.pdf", sent.FileName)
	assert.Contains(t, string(sent.PDF), "%PDF-1.7")
}

func TestSendInvoiceUnknownReservation(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.SendInvoice(context.Background(), "missing"), reservation.ErrNotFound)
	assert.Empty(t, f.notifier.invoices)
}
