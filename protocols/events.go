package protocols

import (
	"context"
	"time"

	"github.com/giovaniif/items-api/domain/item"
)

const (
	ItemCreated = "item.created"
	ItemDeleted = "item.deleted"
)

type ItemEvent struct {
	Type       string    `json:"type"`
	Item       item.Item `json:"item"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewItemEvent(eventType string, it item.Item) ItemEvent {
	return ItemEvent{Type: eventType, Item: it, OccurredAt: time.Now().UTC()}
}

type EventPublisher interface {
	Publish(ctx context.Context, event ItemEvent) error
}
