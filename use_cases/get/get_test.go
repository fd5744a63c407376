package get

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/giovaniif/items-api/domain/item"
)

type mockRepository struct {
	getResult item.Item
	getErr    error

	getCalledWithId int64
}

func (m *mockRepository) List(ctx context.Context) []item.Item { return nil }
func (m *mockRepository) Create(ctx context.Context, newItem item.Item) (item.Item, error) {
	return newItem, nil
}
func (m *mockRepository) GetById(ctx context.Context, itemId int64) (item.Item, error) {
	m.getCalledWithId = itemId
	return m.getResult, m.getErr
}
func (m *mockRepository) DeleteById(ctx context.Context, itemId int64) (item.Item, error) {
	return item.Item{}, nil
}

func TestGet_Success(t *testing.T) {
	repo := &mockRepository{getResult: item.Item{Id: 3, Name: "Widget", Price: 10, Total: 11}}
	uc := NewGet(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	out, err := uc.Get(context.Background(), Input{ItemId: 3})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out != repo.getResult {
		t.Fatalf("expected %+v, got %+v", repo.getResult, out)
	}
	if repo.getCalledWithId != 3 {
		t.Fatalf("expected GetById called with 3, got %d", repo.getCalledWithId)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepository{getErr: item.NewNotFoundError(999)}
	uc := NewGet(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := uc.Get(context.Background(), Input{ItemId: 999})
	if !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
