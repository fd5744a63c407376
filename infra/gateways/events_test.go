package gateways

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/giovaniif/items-api/domain/item"
	protocols "github.com/giovaniif/items-api/protocols"
)

func TestNewItemMessage(t *testing.T) {
	occurredAt := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	event := protocols.ItemEvent{
		Type:       protocols.ItemCreated,
		Item:       item.Item{Id: 42, Name: "Widget", Price: 10, Total: 11},
		OccurredAt: occurredAt,
	}

	msg, err := newItemMessage(event)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(msg.Key) != "42" {
		t.Fatalf("expected key 42, got %s", msg.Key)
	}
	if !msg.Time.Equal(occurredAt) {
		t.Fatalf("expected time %v, got %v", occurredAt, msg.Time)
	}
	if len(msg.Headers) != 1 || msg.Headers[0].Key != "event-type" || string(msg.Headers[0].Value) != protocols.ItemCreated {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}

	var decoded protocols.ItemEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("expected JSON value, got %v", err)
	}
	if decoded.Type != event.Type || decoded.Item != event.Item {
		t.Fatalf("expected %+v, got %+v", event, decoded)
	}
}

func TestEventPublisherLog(t *testing.T) {
	p := NewEventPublisherLog(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := p.Publish(context.Background(), protocols.NewItemEvent(protocols.ItemDeleted, item.Item{Id: 1}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
