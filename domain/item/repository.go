package item

import "context"

// Repository owns the ordered item collection. Create assigns the id; GetById and
// DeleteById return an error wrapping ErrNotFound when no item matches.
type Repository interface {
	List(ctx context.Context) []Item
	Create(ctx context.Context, newItem Item) (Item, error)
	GetById(ctx context.Context, itemId int64) (Item, error)
	DeleteById(ctx context.Context, itemId int64) (Item, error)
}
