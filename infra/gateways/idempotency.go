package gateways

import (
	"context"
	"sync"
	"time"

	protocols "github.com/giovaniif/items-api/protocols"
)

const (
	statusProcessing = "processing"
	statusSuccess    = "success"
)

type IdempotencyGatewayMemory struct {
	mutex           sync.Mutex
	ttl             time.Duration
	now             func() time.Time
	idempotencyKeys map[string]*IdempotencyState
}

type IdempotencyState struct {
	Status    string
	Result    *protocols.IdempotencyKeyResult
	ExpiresAt time.Time
}

func NewIdempotencyGatewayMemory(ttl time.Duration) *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		ttl:             ttl,
		now:             time.Now,
		idempotencyKeys: make(map[string]*IdempotencyState),
	}
}

func (g *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	now := g.now()
	state, exists := g.idempotencyKeys[idempotencyKey]
	if exists && now.Before(state.ExpiresAt) {
		switch state.Status {
		case statusSuccess:
			return state.Result, nil
		case statusProcessing:
			return nil, protocols.ErrIdempotencyKeyInProgress
		}
	}

	g.idempotencyKeys[idempotencyKey] = &IdempotencyState{
		Status:    statusProcessing,
		ExpiresAt: now.Add(g.ttl),
	}
	return nil, nil
}

func (g *IdempotencyGatewayMemory) MarkFailure(ctx context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.idempotencyKeys, idempotencyKey)
	return nil
}

func (g *IdempotencyGatewayMemory) MarkSuccess(ctx context.Context, idempotencyKey string, result protocols.IdempotencyKeyResult) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if state, exists := g.idempotencyKeys[idempotencyKey]; exists {
		state.Status = statusSuccess
		state.Result = &result
		state.ExpiresAt = g.now().Add(g.ttl)
	}

	return nil
}
