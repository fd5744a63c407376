package remove

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/giovaniif/items-api/domain/item"
	"github.com/giovaniif/items-api/protocols"
)

type Remove struct {
	itemRepository item.Repository
	eventPublisher protocols.EventPublisher
	log            *slog.Logger
}

func NewRemove(itemRepository item.Repository, eventPublisher protocols.EventPublisher, log *slog.Logger) *Remove {
	return &Remove{
		itemRepository: itemRepository,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (r *Remove) Remove(ctx context.Context, input Input) error {
	ctx, span := otel.Tracer("items").Start(ctx, "remove.Remove")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", input.ItemId))

	removed, err := r.itemRepository.DeleteById(ctx, input.ItemId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.log.WarnContext(ctx, "cannot delete, item not found", slog.Int64("id", input.ItemId))
		return err
	}
	r.log.InfoContext(ctx, "item deleted", slog.Int64("id", removed.Id))

	// the item is already gone; a lost event must not turn into a failed delete
	if err := r.eventPublisher.Publish(ctx, protocols.NewItemEvent(protocols.ItemDeleted, removed)); err != nil {
		r.log.ErrorContext(ctx, "failed to publish item event", slog.Int64("id", removed.Id), slog.Any("error", err))
	}
	return nil
}

type Input struct {
	ItemId int64
}
