package invoice

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "PDF not found")
	ErrInvalidType           = apperror.New(http.StatusBadRequest, "invalid document type")
	ErrUnsupportedReportType = apperror.New(http.StatusBadRequest, "report type is not supported for PDF generation")
	ErrPaymentNotFound       = apperror.New(http.StatusNotFound, "payment not found for reservation")
)

type Type string

const (
	TypeInvoice             Type = "invoice"
	TypeRevenueReport       Type = "revenue_report"
	TypePaymentStatusReport Type = "payment_status_report"
	TypeBookingFinancials   Type = "booking_financials"
	TypeRefundReport        Type = "refund_report"
	TypeAvailabilityReport  Type = "availability_report"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypeRevenueReport, TypePaymentStatusReport, TypeBookingFinancials, TypeRefundReport, TypeAvailabilityReport:
		return true
	}
	return false
}

// Invoice is a generated PDF document: a guest invoice or a financial report.
// ReservationID is empty for reports.
type Invoice struct {
	ID             string
	ReservationID  string
	Type           Type
	FileName       string
	StoragePath    string
	CompressedHTML []byte
	GeneratedAt    time.Time
	GeneratedBy    string
	Filters        map[string]string
}

// ReportFilters selects the data rendered into a report PDF.
type ReportFilters struct {
	Preset      string
	StartDate   string
	EndDate     string
	Status      string
	RoomType    string
	Granularity string
}

// Map returns the non-empty filters, as stored in the document metadata.
func (f ReportFilters) Map() map[string]string {
	m := map[string]string{}
	for k, v := range map[string]string{
		"preset":      f.Preset,
		"start_date":  f.StartDate,
		"end_date":    f.EndDate,
		"status":      f.Status,
		"room_type":   f.RoomType,
		"granularity": f.Granularity,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

// Document is a PDF ready for download.
type Document struct {
	FileName string
	Content  []byte
}
