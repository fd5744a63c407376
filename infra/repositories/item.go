package repositories

import (
	"context"
	"sync"

	"github.com/giovaniif/items-api/domain/item"
)

type ItemRepositoryMemory struct {
	mutex  sync.RWMutex
	items  []item.Item
	lastId int64
}

func NewItemRepositoryMemory() *ItemRepositoryMemory {
	return &ItemRepositoryMemory{
		items: make([]item.Item, 0),
	}
}

func (r *ItemRepositoryMemory) List(ctx context.Context) []item.Item {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	items := make([]item.Item, len(r.items))
	copy(items, r.items)
	return items
}

// Create assigns ids from a counter that never goes back, so ids stay unique after deletes.
func (r *ItemRepositoryMemory) Create(ctx context.Context, newItem item.Item) (item.Item, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.lastId++
	newItem.Id = r.lastId
	r.items = append(r.items, newItem)
	return newItem, nil
}

func (r *ItemRepositoryMemory) GetById(ctx context.Context, itemId int64) (item.Item, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	index := r.indexOf(itemId)
	if index == -1 {
		return item.Item{}, item.NewNotFoundError(itemId)
	}
	return r.items[index], nil
}

func (r *ItemRepositoryMemory) DeleteById(ctx context.Context, itemId int64) (item.Item, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	index := r.indexOf(itemId)
	if index == -1 {
		return item.Item{}, item.NewNotFoundError(itemId)
	}
	removed := r.items[index]
	r.items = append(r.items[:index], r.items[index+1:]...)
	return removed, nil
}

func (r *ItemRepositoryMemory) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.items)
}

// indexOf must be called with the mutex held.
func (r *ItemRepositoryMemory) indexOf(itemId int64) int {
	for i, it := range r.items {
		if it.Id == itemId {
			return i
		}
	}
	return -1
}
