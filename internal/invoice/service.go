package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/notification"
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/daterange"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/storage"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
	"github.com/nekogravitycat/hotel-ops-backend/internal/sysconfig"
)

const defaultHotelName = "Grand Hotel"

type Service interface {
	GenerateInvoice(ctx context.Context, reservationID, userID string) (*Invoice, error)
	GenerateReport(ctx context.Context, reportType Type, filters ReportFilters, userID string) (*Invoice, error)
	GetPDF(ctx context.Context, invoiceID string) (*Document, error)
	// SendInvoice generates a fresh invoice and emails it to the guest.
	SendInvoice(ctx context.Context, reservationID string) error
	// IssueInvoice is SendInvoice on behalf of a user; it is called once a payment settles.
	IssueInvoice(ctx context.Context, reservationID, userID string) error
}

// Deps groups the collaborators of the invoice service.
type Deps struct {
	Repo         Repository
	Reservations reservation.Service
	Payments     payment.Repository
	Rooms        room.Service
	Reports      report.Service
	Notifier     notification.Service
	Config       notification.ConfigSource
	Storage      storage.Storage
	Renderer     Renderer
	Compressor   *Compressor
	Log          *zap.Logger
}

type service struct {
	Deps
	docs *documents
	now  func() time.Time
}

func NewService(deps Deps) (Service, error) {
	docs, err := newDocuments()
	if err != nil {
		return nil, err
	}
	return &service{
		Deps: deps,
		docs: docs,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) branding(ctx context.Context, title string) pageData {
	data := pageData{HotelName: defaultHotelName, Title: title, GeneratedAt: s.now()}
	if name, err := s.Config.Get(ctx, sysconfig.KeyHotelName); err == nil && name != "" {
		data.HotelName = name
	}
	if logo, err := s.Config.Get(ctx, sysconfig.KeyHotelLogoURL); err == nil {
		data.LogoURL = logo
	}
	return data
}

func (s *service) GenerateInvoice(ctx context.Context, reservationID, userID string) (*Invoice, error) {
	inv, _, _, err := s.generateInvoice(ctx, reservationID, userID)
	return inv, err
}

func (s *service) generateInvoice(ctx context.Context, reservationID, userID string) (*Invoice, []byte, *reservation.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, nil, err
	}
	if res.PaymentReference == nil || *res.PaymentReference == "" {
		return nil, nil, nil, ErrPaymentNotFound
	}
	p, err := s.Payments.GetByReference(ctx, *res.PaymentReference)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return nil, nil, nil, ErrPaymentNotFound
		}
		return nil, nil, nil, apperror.Internal(fmt.Errorf("load payment %s: %w", *res.PaymentReference, err), "failed to generate invoice")
	}
	rm, err := s.Rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return nil, nil, nil, err
	}

	id := uuid.NewString()
	data := s.branding(ctx, "Invoice")
	data.Invoice = &invoiceView{
		Number:        "INV-" + strings.ToUpper(id[:8]),
		ReservationID: res.ID,
		GuestName:     res.GuestName,
		GuestEmail:    res.GuestEmail,
		RoomNumber:    rm.RoomNumber,
		RoomType:      string(rm.Type),
		CheckIn:       res.CheckInDate,
		CheckOut:      res.CheckOutDate,
		Nights:        daterange.DaysBetween(res.CheckInDate, res.CheckOutDate),
		Rate:          rm.Rate,
		Amount:        p.MajorAmount(),
		Reference:     p.Reference,
		PaymentStatus: string(p.Status),
		PaidAt:        p.UpdatedAt,
	}

	inv := &Invoice{
		ID:            id,
		ReservationID: res.ID,
		Type:          TypeInvoice,
		FileName:      fmt.Sprintf("invoice-%s.pdf", res.ID),
		StoragePath:   fmt.Sprintf("invoices/%s.pdf", id),
		GeneratedAt:   data.GeneratedAt,
		GeneratedBy:   userID,
	}
	pdf, err := s.produce(ctx, inv, data)
	if err != nil {
		return nil, nil, nil, err
	}
	s.Log.Info("invoice generated", zap.String("invoice_id", id), zap.String("reservation_id", res.ID))
	return inv, pdf, res, nil
}

var reportTitles = map[Type]string{
	TypeRevenueReport:       "Revenue Report",
	TypePaymentStatusReport: "Payment Status Report",
	TypeRefundReport:        "Refund Report",
}

func (s *service) GenerateReport(ctx context.Context, reportType Type, filters ReportFilters, userID string) (*Invoice, error) {
	if !reportType.Valid() || reportType == TypeInvoice {
		return nil, ErrInvalidType
	}
	title, ok := reportTitles[reportType]
	if !ok {
		return nil, ErrUnsupportedReportType
	}

	// A PDF carries the first full page of rows.
	window := report.Filter{
		Preset:    filters.Preset,
		StartDate: filters.StartDate,
		EndDate:   filters.EndDate,
		Page:      1,
		Limit:     request.MaxLimit,
	}

	data := s.branding(ctx, title)
	data.Filters = filters.Map()
	var err error
	switch reportType {
	case TypeRevenueReport:
		data.Revenue, err = s.Reports.Revenue(ctx, report.RevenueFilter{
			Filter: window, Status: filters.Status, RoomType: filters.RoomType, Granularity: filters.Granularity,
		})
	case TypePaymentStatusReport:
		data.PaymentStatus, err = s.Reports.PaymentStatus(ctx, report.PaymentStatusFilter{Filter: window, Status: filters.Status})
	case TypeRefundReport:
		data.Refunds, err = s.Reports.Refunds(ctx, window)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	inv := &Invoice{
		ID:          id,
		Type:        reportType,
		FileName:    fmt.Sprintf("%s-%s.pdf", strings.ReplaceAll(string(reportType), "_", "-"), data.GeneratedAt.Format("2006-01-02")),
		StoragePath: fmt.Sprintf("reports/%s.pdf", id),
		GeneratedAt: data.GeneratedAt,
		GeneratedBy: userID,
		Filters:     data.Filters,
	}
	if _, err := s.produce(ctx, inv, data); err != nil {
		return nil, err
	}
	s.Log.Info("report generated", zap.String("invoice_id", id), zap.String("type", string(reportType)))
	return inv, nil
}

// produce renders the page, stores the PDF and records the document.
func (s *service) produce(ctx context.Context, inv *Invoice, data pageData) ([]byte, error) {
	html, err := s.docs.render(inv.Type, data)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate PDF")
	}
	pdf, err := s.Renderer.Render(ctx, html)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadGateway, "failed to generate PDF")
	}
	if err := s.Storage.Save(ctx, inv.StoragePath, bytes.NewReader(pdf), "application/pdf"); err != nil {
		return nil, apperror.Internal(fmt.Errorf("save %s: %w", inv.StoragePath, err), "failed to store PDF")
	}
	inv.CompressedHTML = s.Compressor.Compress([]byte(html))
	if err := s.Repo.Create(ctx, inv); err != nil {
		if delErr := s.Storage.Delete(ctx, inv.StoragePath); delErr != nil {
			s.Log.Warn("orphaned pdf not removed", zap.String("path", inv.StoragePath), zap.Error(delErr))
		}
		return nil, apperror.Internal(fmt.Errorf("record invoice %s: %w", inv.ID, err), "failed to store PDF")
	}
	return pdf, nil
}

func (s *service) GetPDF(ctx context.Context, invoiceID string) (*Document, error) {
	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(fmt.Errorf("load invoice %s: %w", invoiceID, err), "failed to load PDF")
	}

	rc, err := s.Storage.Get(ctx, inv.StoragePath)
	if errors.Is(err, storage.ErrNotFound) {
		return s.regenerate(ctx, inv)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("open %s: %w", inv.StoragePath, err), "failed to load PDF")
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("read %s: %w", inv.StoragePath, err), "failed to load PDF")
	}
	return &Document{FileName: inv.FileName, Content: content}, nil
}

// regenerate rebuilds a lost PDF from the stored HTML and puts it back in storage.
func (s *service) regenerate(ctx context.Context, inv *Invoice) (*Document, error) {
	if len(inv.CompressedHTML) == 0 {
		return nil, ErrNotFound
	}
	html, err := s.Compressor.Decompress(inv.CompressedHTML)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("decompress invoice %s: %w", inv.ID, err), "failed to load PDF")
	}
	pdf, err := s.Renderer.Render(ctx, string(html))
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusBadGateway, "failed to generate PDF")
	}
	if err := s.Storage.Save(ctx, inv.StoragePath, bytes.NewReader(pdf), "application/pdf"); err != nil {
		s.Log.Warn("regenerated pdf not stored", zap.String("invoice_id", inv.ID), zap.Error(err))
	}
	s.Log.Info("pdf regenerated", zap.String("invoice_id", inv.ID))
	return &Document{FileName: inv.FileName, Content: pdf}, nil
}

func (s *service) SendInvoice(ctx context.Context, reservationID string) error {
	return s.IssueInvoice(ctx, reservationID, "")
}

func (s *service) IssueInvoice(ctx context.Context, reservationID, userID string) error {
	inv, pdf, res, err := s.generateInvoice(ctx, reservationID, userID)
	if err != nil {
		return err
	}
	return s.Notifier.SendInvoice(ctx, notification.InvoiceEmail{
		Email:         res.GuestEmail,
		GuestName:     res.GuestName,
		ReservationID: res.ID,
		FileName:      inv.FileName,
		PDF:           pdf,
	})
}

var _ payment.InvoiceIssuer = (*service)(nil)
