package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pagePaymentConfirmation = "payment_confirmation"
	pagePaymentFailure      = "payment_failure"
	pageCancellation        = "cancellation"
	pageCheckInReminder     = "check_in_reminder"
	pageCheckOutReminder    = "check_out_reminder"
	pageTaskAssignment      = "task_assignment"
	pageInvoice             = "invoice"
)

var pages = []string{
	pagePaymentConfirmation,
	pagePaymentFailure,
	pageCancellation,
	pageCheckInReminder,
	pageCheckOutReminder,
	pageTaskAssignment,
	pageInvoice,
}

var templateFuncs = template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("Monday, 2 January 2006") },
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// mailData feeds every email template; each page reads the fields it needs.
type mailData struct {
	HotelName     string
	LogoURL       string
	GuestName     string
	ReservationID string
	Reference     string
	Amount        float64
	CheckInDate   time.Time
	CheckOutDate  time.Time
	RoomNumber    string
	RoomType      string
	Reason        string
	StaffName     string
	TaskType      string
	DueDate       time.Time
}

type renderer struct {
	pages map[string]*template.Template
}

// newRenderer parses the shared layout once per page so each page can define its own "content" block.
func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse email template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) render(page string, data mailData) (string, error) {
	t, ok := r.pages[page]
	if !ok {
		return "", fmt.Errorf("unknown email template %s", page)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", page, err)
	}
	return buf.String(), nil
}
