package gateways

import (
	"context"
	"log/slog"

	protocols "github.com/giovaniif/items-api/protocols"
)

// EventPublisherLog stands in for Kafka when no brokers are configured.
type EventPublisherLog struct {
	log *slog.Logger
}

func NewEventPublisherLog(log *slog.Logger) *EventPublisherLog {
	return &EventPublisherLog{log: log}
}

func (p *EventPublisherLog) Publish(ctx context.Context, event protocols.ItemEvent) error {
	p.log.DebugContext(ctx, "item event",
		slog.String("type", event.Type),
		slog.Int64("id", event.Item.Id),
		slog.Time("occurredAt", event.OccurredAt),
	)
	return nil
}
