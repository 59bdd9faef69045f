package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentFuncs = template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("2006-01-02") },
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
	"money":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"percent":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}

type invoiceView struct {
	Number        string
	ReservationID string
	GuestName     string
	GuestEmail    string
	RoomNumber    string
	RoomType      string
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	Rate          float64
	Amount        float64
	Reference     string
	PaymentStatus string
	PaidAt        time.Time
}

type pageData struct {
	HotelName     string
	LogoURL       string
	Title         string
	GeneratedAt   time.Time
	Filters       map[string]string
	Invoice       *invoiceView
	Revenue       *report.RevenueReport
	PaymentStatus *report.PaymentStatusReport
	Refunds       *report.RefundReport
}

type documents struct {
	pages map[Type]*template.Template
}

var documentPages = map[Type]string{
	TypeInvoice:             "invoice",
	TypeRevenueReport:       "revenue_report",
	TypePaymentStatusReport: "payment_status_report",
	TypeRefundReport:        "refund_report",
}

func newDocuments() (*documents, error) {
	d := &documents{pages: make(map[Type]*template.Template, len(documentPages))}
	for typ, file := range documentPages {
		t, err := template.New("layout.html").Funcs(documentFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+file+".html")
		if err != nil {
			return nil, fmt.Errorf("parse document template %s: %w", file, err)
		}
		d.pages[typ] = t
	}
	return d, nil
}

func (d *documents) render(typ Type, data pageData) (string, error) {
	t, ok := d.pages[typ]
	if !ok {
		return "", ErrUnsupportedReportType
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", typ, err)
	}
	return buf.String(), nil
}
