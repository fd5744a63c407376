package protocols

import (
	"context"
	"errors"

	"github.com/giovaniif/items-api/domain/item"
)

var (
	ErrIdempotencyKeyInProgress = errors.New("idempotency key is already being processed")
	ErrIdempotencyKeyReused     = errors.New("idempotency key was used with a different request")
)

// IdempotencyKeyResult is what a succeeded key replays. Fingerprint identifies the
// request body that produced Item.
type IdempotencyKeyResult struct {
	Item        item.Item `json:"item"`
	Fingerprint string    `json:"fingerprint"`
}

// IdempotencyGateway guards item creation against replays of the same Idempotency-Key.
// ReserveIdempotencyKey returns a non-nil result when the key already succeeded, and
// ErrIdempotencyKeyInProgress while another request holds it.
type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkFailure(ctx context.Context, idempotencyKey string) error
	MarkSuccess(ctx context.Context, idempotencyKey string, result IdempotencyKeyResult) error
}
