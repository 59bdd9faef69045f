package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-ops-backend/internal/pkg/events"
	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
)

// InvoiceIssuer produces and delivers the invoice of a paid reservation.
type InvoiceIssuer interface {
	IssueInvoice(ctx context.Context, reservationID, userID string) error
}

// Notifier sends payment outcome emails to the guest.
type Notifier interface {
	NotifyPaymentSuccess(ctx context.Context, email, name, reference string, amount float64) error
	NotifyPaymentFailure(ctx context.Context, email, name, reference string) error
}

type Outcome string

const (
	OutcomeVerified        Outcome = "verified"
	OutcomeAlreadyVerified Outcome = "already_verified"
	OutcomeFailed          Outcome = "failed"
)

type InitResult struct {
	AuthorizationURL string
	Reference        string
	Payment          *Payment
}

// VerifyResult carries the payment after verification. Reservation is nil for failed payments.
type VerifyResult struct {
	Outcome     Outcome
	Payment     *Payment
	Reservation *reservation.Reservation
}

type Service interface {
	Initialize(ctx context.Context, reservationID, userID string) (*InitResult, error)
	Verify(ctx context.Context, reference, userID string) (*VerifyResult, error)
	GetByReference(ctx context.Context, reference string) (*Payment, error)
}

type service struct {
	repo         Repository
	gateway      Gateway
	reservations reservation.Service
	invoices     InvoiceIssuer
	notifier     Notifier
	publisher    events.Publisher
	log          *zap.Logger
	now          func() time.Time
}

func NewService(
	repo Repository,
	gateway Gateway,
	reservations reservation.Service,
	invoices InvoiceIssuer,
	notifier Notifier,
	publisher events.Publisher,
	log *zap.Logger,
) Service {
	return &service{
		repo:         repo,
		gateway:      gateway,
		reservations: reservations,
		invoices:     invoices,
		notifier:     notifier,
		publisher:    publisher,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func gatewayError(err error) error {
	return apperror.Wrap(err, http.StatusBadGateway, "payment gateway request failed")
}

func (s *service) Initialize(ctx context.Context, reservationID, userID string) (*InitResult, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case reservation.StatusPaid:
		return nil, ErrAlreadyPaid
	case reservation.StatusPending:
	default:
		return nil, ErrNotPayable
	}

	amount := ToMinor(res.Amount)
	tx, err := s.gateway.Initialize(ctx, amount, res.GuestEmail, map[string]string{
		"reservation_id": res.ID,
		"user_id":        userID,
	})
	if err != nil {
		return nil, gatewayError(err)
	}

	now := s.now()
	p := &Payment{
		ID:            uuid.NewString(),
		ReservationID: res.ID,
		Email:         res.GuestEmail,
		CustomerName:  res.GuestName,
		Amount:        amount,
		Reference:     tx.Reference,
		Status:        StatusPending,
		Provider:      ProviderPaystack,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			return nil, err
		}
		return nil, apperror.Internal(fmt.Errorf("store payment %s: %w", tx.Reference, err), "failed to initialize payment")
	}

	if err := s.reservations.SetPaymentReference(ctx, res.ID, tx.Reference); err != nil {
		return nil, apperror.Internal(fmt.Errorf("link payment %s to reservation %s: %w", tx.Reference, res.ID, err), "failed to initialize payment")
	}

	return &InitResult{AuthorizationURL: tx.AuthorizationURL, Reference: tx.Reference, Payment: p}, nil
}

func (s *service) Verify(ctx context.Context, reference, userID string) (*VerifyResult, error) {
	p, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusSuccess {
		res, err := s.reservations.GetByID(ctx, p.ReservationID)
		if err != nil {
			return nil, err
		}
		return &VerifyResult{Outcome: OutcomeAlreadyVerified, Payment: p, Reservation: res}, nil
	}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, gatewayError(err)
	}

	if tx.Status != TransactionSuccess {
		failed, err := s.repo.UpdateStatus(ctx, reference, StatusFailed, s.now())
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("mark payment %s failed: %w", reference, err), "failed to verify payment")
		}
		if err := s.notifier.NotifyPaymentFailure(ctx, p.Email, p.CustomerName, reference); err != nil {
			s.log.Warn("payment failure email not sent", zap.String("reference", reference), zap.Error(err))
		}
		s.publish(ctx, events.PaymentFailed, failed)
		return &VerifyResult{Outcome: OutcomeFailed, Payment: failed}, nil
	}

	paid, err := s.repo.UpdateStatus(ctx, reference, StatusSuccess, s.now())
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("mark payment %s successful: %w", reference, err), "failed to verify payment")
	}
	if err := s.reservations.UpdateStatus(ctx, p.ReservationID, reservation.StatusPaid); err != nil {
		return nil, apperror.Internal(fmt.Errorf("mark reservation %s paid: %w", p.ReservationID, err), "failed to verify payment")
	}

	// The guest has paid; nothing below may fail the request.
	if err := s.invoices.IssueInvoice(ctx, p.ReservationID, userID); err != nil {
		s.log.Error("invoice not issued", zap.String("reservation_id", p.ReservationID), zap.Error(err))
	}
	if err := s.notifier.NotifyPaymentSuccess(ctx, p.Email, p.CustomerName, reference, paid.MajorAmount()); err != nil {
		s.log.Warn("payment confirmation email not sent", zap.String("reference", reference), zap.Error(err))
	}
	s.publish(ctx, events.PaymentVerified, paid)

	res, err := s.reservations.GetByID(ctx, p.ReservationID)
	if err != nil {
		s.log.Warn("reload reservation after payment failed", zap.String("reservation_id", p.ReservationID), zap.Error(err))
		res = nil
	}
	return &VerifyResult{Outcome: OutcomeVerified, Payment: paid, Reservation: res}, nil
}

func (s *service) GetByReference(ctx context.Context, reference string) (*Payment, error) {
	return s.repo.GetByReference(ctx, reference)
}

func (s *service) publish(ctx context.Context, eventType string, p *Payment) {
	evt := events.New(eventType, p.ReservationID, map[string]any{
		"reference":      p.Reference,
		"reservation_id": p.ReservationID,
		"amount":         p.MajorAmount(),
		"status":         p.Status,
	})
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("publish payment event failed", zap.String("type", eventType), zap.Error(err))
	}
}
