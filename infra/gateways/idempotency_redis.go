package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	protocols "github.com/giovaniif/items-api/protocols"
)

const idempotencyKeyPrefix = "idempotency:items:create:"

type idempotencyRedisState struct {
	Status string                          `json:"status"`
	Result *protocols.IdempotencyKeyResult `json:"result,omitempty"`
}

type IdempotencyGatewayRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyGatewayRedis(client *redis.Client, ttl time.Duration) *IdempotencyGatewayRedis {
	return &IdempotencyGatewayRedis{client: client, ttl: ttl}
}

func (g *IdempotencyGatewayRedis) key(idempotencyKey string) string {
	return idempotencyKeyPrefix + idempotencyKey
}

func (g *IdempotencyGatewayRedis) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	k := g.key(idempotencyKey)
	processing, err := json.Marshal(idempotencyRedisState{Status: statusProcessing})
	if err != nil {
		return nil, err
	}

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		data, err := g.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// SET NX loses to a concurrent reservation; read the winner's state again
			_, err := g.client.SetArgs(ctx, k, processing, redis.SetArgs{Mode: "NX", TTL: g.ttl}).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("redis set: %w", err)
			}
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}

		var state idempotencyRedisState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("redis unmarshal: %w", err)
		}

		switch state.Status {
		case statusSuccess:
			return state.Result, nil
		case statusProcessing:
			return nil, protocols.ErrIdempotencyKeyInProgress
		default:
			if err := g.client.Set(ctx, k, processing, g.ttl).Err(); err != nil {
				return nil, fmt.Errorf("redis set: %w", err)
			}
			return nil, nil
		}
	}
}

func (g *IdempotencyGatewayRedis) MarkFailure(ctx context.Context, idempotencyKey string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return g.client.Del(ctx, g.key(idempotencyKey)).Err()
}

func (g *IdempotencyGatewayRedis) MarkSuccess(ctx context.Context, idempotencyKey string, result protocols.IdempotencyKeyResult) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	raw, err := json.Marshal(idempotencyRedisState{
		Status: statusSuccess,
		Result: &result,
	})
	if err != nil {
		return err
	}
	return g.client.Set(ctx, g.key(idempotencyKey), raw, g.ttl).Err()
}
