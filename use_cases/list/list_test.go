package list

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/giovaniif/items-api/domain/item"
)

type mockRepository struct {
	listResult []item.Item

	listCalled bool
}

func (m *mockRepository) List(ctx context.Context) []item.Item {
	m.listCalled = true
	return m.listResult
}
func (m *mockRepository) Create(ctx context.Context, newItem item.Item) (item.Item, error) {
	return newItem, nil
}
func (m *mockRepository) GetById(ctx context.Context, itemId int64) (item.Item, error) {
	return item.Item{}, nil
}
func (m *mockRepository) DeleteById(ctx context.Context, itemId int64) (item.Item, error) {
	return item.Item{}, nil
}

func TestList_ReturnsRepositoryItems(t *testing.T) {
	repo := &mockRepository{listResult: []item.Item{
		{Id: 1, Name: "Widget", Price: 10, Total: 11},
		{Id: 3, Name: "Gadget", Price: 20, Total: 22},
	}}
	uc := NewList(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	items := uc.List(context.Background())
	if !repo.listCalled {
		t.Fatalf("expected List to be called")
	}
	if !reflect.DeepEqual(items, repo.listResult) {
		t.Fatalf("expected %+v, got %+v", repo.listResult, items)
	}
}

func TestList_Empty(t *testing.T) {
	repo := &mockRepository{listResult: []item.Item{}}
	uc := NewList(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if items := uc.List(context.Background()); len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}
