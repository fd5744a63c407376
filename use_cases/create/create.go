package create

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/giovaniif/items-api/domain/item"
	"github.com/giovaniif/items-api/protocols"
)

func NewCreate(itemRepository item.Repository, idempotencyGateway protocols.IdempotencyGateway, eventPublisher protocols.EventPublisher, log *slog.Logger) *Create {
	return &Create{
		itemRepository:     itemRepository,
		idempotencyGateway: idempotencyGateway,
		eventPublisher:     eventPublisher,
		log:                log,
	}
}

func (c *Create) Create(ctx context.Context, input Input) (Output, error) {
	ctx, span := otel.Tracer("items").Start(ctx, "create.Create")
	defer span.End()

	if input.IdempotencyKey == "" {
		created, err := c.create(ctx, input)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Output{}, err
		}
		return Output{Item: created}, nil
	}

	fingerprint := requestFingerprint(input)
	result, err := c.idempotencyGateway.ReserveIdempotencyKey(ctx, input.IdempotencyKey)
	if err != nil {
		c.log.WarnContext(ctx, "failed to reserve idempotency key", slog.String("key", input.IdempotencyKey), slog.Any("error", err))
		span.SetStatus(codes.Error, err.Error())
		return Output{}, err
	}
	if result != nil {
		if result.Fingerprint != fingerprint {
			c.log.WarnContext(ctx, "idempotency key reused with a different body", slog.String("key", input.IdempotencyKey))
			span.SetStatus(codes.Error, protocols.ErrIdempotencyKeyReused.Error())
			return Output{}, protocols.ErrIdempotencyKeyReused
		}
		c.log.InfoContext(ctx, "replaying created item", slog.String("key", input.IdempotencyKey), slog.Int64("id", result.Item.Id))
		span.SetAttributes(attribute.Bool("idempotency.replayed", true))
		return Output{Item: result.Item, Replayed: true}, nil
	}

	var created item.Item
	success := false
	defer func() {
		// the key must leave processing even when the caller has gone away
		markCtx := context.WithoutCancel(ctx)
		var markErr error
		if success {
			markErr = c.idempotencyGateway.MarkSuccess(markCtx, input.IdempotencyKey, protocols.IdempotencyKeyResult{
				Item:        created,
				Fingerprint: fingerprint,
			})
		} else {
			markErr = c.idempotencyGateway.MarkFailure(markCtx, input.IdempotencyKey)
		}
		if markErr != nil {
			c.log.ErrorContext(markCtx, "failed to update idempotency key", slog.String("key", input.IdempotencyKey), slog.Any("error", markErr))
		}
	}()

	created, err = c.create(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Output{}, err
	}

	success = true
	return Output{Item: created}, nil
}

func (c *Create) create(ctx context.Context, input Input) (item.Item, error) {
	newItem, err := item.NewItem(input.Name, input.Price)
	if err != nil {
		c.log.WarnContext(ctx, "rejected item", slog.Any("name", input.Name), slog.Any("price", input.Price), slog.Any("error", err))
		return item.Item{}, err
	}

	created, err := c.itemRepository.Create(ctx, newItem)
	if err != nil {
		return item.Item{}, err
	}
	c.log.InfoContext(ctx, "created item",
		slog.Int64("id", created.Id),
		slog.String("name", created.Name),
		slog.Float64("price", created.Price),
		slog.Float64("total", created.Total),
	)

	if err := c.eventPublisher.Publish(ctx, protocols.NewItemEvent(protocols.ItemCreated, created)); err != nil {
		c.log.ErrorContext(ctx, "failed to publish item event", slog.Int64("id", created.Id), slog.Any("error", err))
	}
	return created, nil
}

// requestFingerprint hashes the create attributes with their decoded types, so 10 and "10" differ.
func requestFingerprint(input Input) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%T:%v|%T:%v", input.Name, input.Name, input.Price, input.Price)))
	return hex.EncodeToString(sum[:])
}

type Input struct {
	Name           any
	Price          any
	IdempotencyKey string
}

type Output struct {
	Item     item.Item
	Replayed bool
}

type Create struct {
	itemRepository     item.Repository
	idempotencyGateway protocols.IdempotencyGateway
	eventPublisher     protocols.EventPublisher
	log                *slog.Logger
}
