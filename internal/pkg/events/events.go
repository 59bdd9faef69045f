// Package events publishes domain events for downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentVerified       = "payment.verified"
	PaymentFailed         = "payment.failed"
	ReservationCheckedIn  = "reservation.checked_in"
	ReservationCheckedOut = "reservation.checked_out"
	ReservationCancelled  = "reservation.cancelled"
	TaskCreated           = "housekeeping.task_created"
	TaskCompleted         = "housekeeping.task_completed"
	ConfigUpdated         = "config.updated"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New creates an event keyed by the aggregate it concerns.
func New(eventType, key string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
