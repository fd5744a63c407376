package get

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/giovaniif/items-api/domain/item"
)

type Get struct {
	itemRepository item.Repository
	log            *slog.Logger
}

func NewGet(itemRepository item.Repository, log *slog.Logger) *Get {
	return &Get{
		itemRepository: itemRepository,
		log:            log,
	}
}

func (g *Get) Get(ctx context.Context, input Input) (item.Item, error) {
	ctx, span := otel.Tracer("items").Start(ctx, "get.Get")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", input.ItemId))

	found, err := g.itemRepository.GetById(ctx, input.ItemId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		g.log.WarnContext(ctx, "item not found", slog.Int64("id", input.ItemId))
		return item.Item{}, err
	}

	g.log.InfoContext(ctx, "returning item", slog.Int64("id", found.Id))
	return found, nil
}

type Input struct {
	ItemId int64
}
