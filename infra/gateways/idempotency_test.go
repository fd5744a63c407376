package gateways

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giovaniif/items-api/domain/item"
	protocols "github.com/giovaniif/items-api/protocols"
)

func TestIdempotencyGatewayMemory_ReserveNewKey(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Hour)

	result, err := g.ReserveIdempotencyKey(context.Background(), "key-1")
	if err != nil || result != nil {
		t.Fatalf("expected (nil, nil) for a new key, got (%v, %v)", result, err)
	}
}

func TestIdempotencyGatewayMemory_ReserveWhileProcessing(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Hour)
	ctx := context.Background()
	g.ReserveIdempotencyKey(ctx, "key-1")

	_, err := g.ReserveIdempotencyKey(ctx, "key-1")
	if !errors.Is(err, protocols.ErrIdempotencyKeyInProgress) {
		t.Fatalf("expected ErrIdempotencyKeyInProgress, got %v", err)
	}
}

func TestIdempotencyGatewayMemory_ReplayAfterSuccess(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Hour)
	ctx := context.Background()
	created := item.Item{Id: 1, Name: "Widget", Price: 10, Total: 11}
	g.ReserveIdempotencyKey(ctx, "key-1")
	g.MarkSuccess(ctx, "key-1", protocols.IdempotencyKeyResult{Item: created, Fingerprint: "abc"})

	result, err := g.ReserveIdempotencyKey(ctx, "key-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result == nil || result.Item != created || result.Fingerprint != "abc" {
		t.Fatalf("expected stored item %+v, got %+v", created, result)
	}
}

func TestIdempotencyGatewayMemory_FailureReleasesKey(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Hour)
	ctx := context.Background()
	g.ReserveIdempotencyKey(ctx, "key-1")
	g.MarkFailure(ctx, "key-1")

	result, err := g.ReserveIdempotencyKey(ctx, "key-1")
	if err != nil || result != nil {
		t.Fatalf("expected key to be reservable again, got (%v, %v)", result, err)
	}
}

func TestIdempotencyGatewayMemory_ExpiredKeyIsReservedAgain(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	g.ReserveIdempotencyKey(ctx, "key-1")
	g.MarkSuccess(ctx, "key-1", protocols.IdempotencyKeyResult{Item: item.Item{Id: 1}})

	now = now.Add(2 * time.Minute)
	result, err := g.ReserveIdempotencyKey(ctx, "key-1")
	if err != nil || result != nil {
		t.Fatalf("expected expired key to be reserved as new, got (%v, %v)", result, err)
	}
}

func TestIdempotencyGatewayMemory_MarkSuccessUnknownKey(t *testing.T) {
	g := NewIdempotencyGatewayMemory(time.Hour)
	ctx := context.Background()

	if err := g.MarkSuccess(ctx, "missing", protocols.IdempotencyKeyResult{Item: item.Item{Id: 1}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	result, _ := g.ReserveIdempotencyKey(ctx, "missing")
	if result != nil {
		t.Fatalf("expected no stored result for a key that was never reserved")
	}
}
