package http

import (
	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	paymentHttp "github.com/nekogravitycat/hotel-ops-backend/internal/payment/http"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/request"
	"github.com/nekogravitycat/hotel-ops-backend/internal/report"
)

const dateLayout = "2006-01-02"

type ReportRequest struct {
	request.ListParams
	Preset    string `form:"preset" binding:"omitempty,oneof=today last_7_days last_14_days month_to_date last_3_months last_12_months year_to_date custom"`
	StartDate string `form:"start_date" binding:"omitempty,max=40"`
	EndDate   string `form:"end_date" binding:"omitempty,max=40"`
}

func (r ReportRequest) Filter() report.Filter {
	return report.Filter{
		Preset:    r.Preset,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Page:      r.Page,
		Limit:     r.Limit,
	}
}

type RevenueRequest struct {
	ReportRequest
	Status      string `form:"status" binding:"omitempty,oneof=Pending Success Failed"`
	RoomType    string `form:"room_type" binding:"omitempty,oneof=single double suite"`
	Granularity string `form:"granularity" binding:"omitempty,oneof=daily weekly monthly"`
}

type PaymentStatusRequest struct {
	ReportRequest
	Status string `form:"status" binding:"omitempty,oneof=Pending Success Failed"`
}

type BookingRequest struct {
	ReportRequest
	ReservationID string `form:"reservation_id" binding:"omitempty,uuid"`
}

type RevenueBucketResponse struct {
	Period   string  `json:"period,omitempty"`
	RoomType string  `json:"room_type,omitempty"`
	Amount   float64 `json:"amount"`
}

type RevenueResponse struct {
	TotalRevenue float64                 `json:"total_revenue"`
	Breakdown    []RevenueBucketResponse `json:"breakdown"`
	Total        int                     `json:"total"`
	Page         int                     `json:"page"`
	Limit        int                     `json:"limit"`
}

func NewRevenueResponse(r *report.RevenueReport) RevenueResponse {
	out := RevenueResponse{
		TotalRevenue: r.TotalRevenue,
		Breakdown:    make([]RevenueBucketResponse, len(r.Breakdown)),
		Total:        r.Total,
		Page:         r.Page,
		Limit:        r.Limit,
	}
	for i, b := range r.Breakdown {
		out.Breakdown[i] = RevenueBucketResponse{Period: b.Period, RoomType: b.RoomType, Amount: b.Amount}
	}
	return out
}

func newPayments(ps []*payment.Payment) []paymentHttp.PaymentResponse {
	out := make([]paymentHttp.PaymentResponse, len(ps))
	for i, p := range ps {
		out[i] = paymentHttp.NewPaymentResponse(p)
	}
	return out
}

type PaymentStatusResponse struct {
	SuccessRate float64                       `json:"success_rate"`
	Payments    []paymentHttp.PaymentResponse `json:"payments"`
	Total       int                           `json:"total"`
	Page        int                           `json:"page"`
	Limit       int                           `json:"limit"`
}

func NewPaymentStatusResponse(r *report.PaymentStatusReport) PaymentStatusResponse {
	return PaymentStatusResponse{
		SuccessRate: r.SuccessRate,
		Payments:    newPayments(r.Payments),
		Total:       r.Total,
		Page:        r.Page,
		Limit:       r.Limit,
	}
}

type BookingRowResponse struct {
	ReservationID string  `json:"reservation_id"`
	GuestName     string  `json:"guest_name"`
	RoomID        string  `json:"room_id"`
	RoomType      string  `json:"room_type"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Status        string  `json:"status"`
	Revenue       float64 `json:"revenue"`
}

type BookingFinancialsResponse struct {
	Bookings []BookingRowResponse `json:"bookings"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	Limit    int                  `json:"limit"`
}

func NewBookingFinancialsResponse(r *report.BookingFinancials) BookingFinancialsResponse {
	out := BookingFinancialsResponse{
		Bookings: make([]BookingRowResponse, len(r.Bookings)),
		Total:    r.Total,
		Page:     r.Page,
		Limit:    r.Limit,
	}
	for i, b := range r.Bookings {
		out.Bookings[i] = BookingRowResponse{
			ReservationID: b.ReservationID,
			GuestName:     b.GuestName,
			RoomID:        b.RoomID,
			RoomType:      b.RoomType,
			CheckInDate:   b.CheckInDate.Format(dateLayout),
			CheckOutDate:  b.CheckOutDate.Format(dateLayout),
			Status:        b.Status,
			Revenue:       b.Revenue,
		}
	}
	return out
}

type RefundResponse struct {
	RefundCount int                           `json:"refund_count"`
	Payments    []paymentHttp.PaymentResponse `json:"payments"`
	Total       int                           `json:"total"`
	Page        int                           `json:"page"`
	Limit       int                           `json:"limit"`
}

func NewRefundResponse(r *report.RefundReport) RefundResponse {
	return RefundResponse{
		RefundCount: r.RefundCount,
		Payments:    newPayments(r.Payments),
		Total:       r.Total,
		Page:        r.Page,
		Limit:       r.Limit,
	}
}
