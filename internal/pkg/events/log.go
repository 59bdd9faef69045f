package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher records events in the application log. Used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("event",
		zap.String("id", event.ID),
		zap.String("type", event.Type),
		zap.String("key", event.Key),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

var _ Publisher = (*LogPublisher)(nil)
