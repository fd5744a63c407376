package list

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giovaniif/items-api/domain/item"
)

type List struct {
	itemRepository item.Repository
	log            *slog.Logger
}

func NewList(itemRepository item.Repository, log *slog.Logger) *List {
	return &List{
		itemRepository: itemRepository,
		log:            log,
	}
}

func (l *List) List(ctx context.Context) []item.Item {
	ctx, span := otel.Tracer("items").Start(ctx, "list.List")
	defer span.End()

	items := l.itemRepository.List(ctx)
	span.SetAttributes(attribute.Int("items.count", len(items)))
	l.log.InfoContext(ctx, "listing items", slog.Int("count", len(items)))
	return items
}
