package http

import (
	"time"

	"github.com/nekogravitycat/hotel-ops-backend/internal/payment"
	reservationHttp "github.com/nekogravitycat/hotel-ops-backend/internal/reservation/http"
)

type VerifyRequest struct {
	Reference string `uri:"reference" binding:"required,max=128"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	Email         string    `json:"email"`
	CustomerName  string    `json:"customer_name"`
	Amount        float64   `json:"amount"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	Refunded      bool      `json:"refunded"`
	Provider      string    `json:"provider"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Email:         p.Email,
		CustomerName:  p.CustomerName,
		Amount:        p.MajorAmount(),
		Reference:     p.Reference,
		Status:        string(p.Status),
		Refunded:      p.Refunded,
		Provider:      p.Provider,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type InitializeResponse struct {
	AuthorizationURL string          `json:"authorization_url"`
	Reference        string          `json:"reference"`
	Payment          PaymentResponse `json:"payment"`
}

type VerifyResponse struct {
	Message     string                               `json:"message"`
	Payment     PaymentResponse                      `json:"payment"`
	Reservation *reservationHttp.ReservationResponse `json:"reservation"`
}

var verifyMessages = map[payment.Outcome]string{
	payment.OutcomeVerified:        "Payment verified successfully",
	payment.OutcomeAlreadyVerified: "Payment already verified",
	payment.OutcomeFailed:          "Payment failed",
}

func NewVerifyResponse(res *payment.VerifyResult) VerifyResponse {
	out := VerifyResponse{
		Message: verifyMessages[res.Outcome],
		Payment: NewPaymentResponse(res.Payment),
	}
	if res.Reservation != nil {
		r := reservationHttp.NewResponse(res.Reservation)
		out.Reservation = &r
	}
	return out
}
