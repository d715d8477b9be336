package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	testhelpers "github.com/avolkoff/orderpanel/internal/test"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

func TestOrderQueryListAppliesDefaults(t *testing.T) {
	var gotLimit, gotOffset int
	orders := &testhelpers.OrderRepositoryStub{
		ListFn: func(_ context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
			if status != nil {
				t.Fatalf("expected nil status filter, got %v", *status)
			}
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	uc := usecase.NewOrderQueryUseCase(orders, &testhelpers.HistoryRepositoryStub{})

	if _, err := uc.List(context.Background(), nil, 0, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 || gotOffset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", gotLimit, gotOffset)
	}
}

func TestOrderQueryListPassesStatusFilter(t *testing.T) {
	pending := model.OrderStatusPending
	views := []model.OrderView{{Order: model.Order{ID: 1, Status: pending}}}
	orders := &testhelpers.OrderRepositoryStub{
		ListFn: func(_ context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
			if status == nil || *status != pending {
				t.Fatalf("expected pending filter, got %v", status)
			}
			return views, nil
		},
	}
	uc := usecase.NewOrderQueryUseCase(orders, &testhelpers.HistoryRepositoryStub{})

	got, err := uc.List(context.Background(), &pending, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestOrderQueryGetPropagatesNotFound(t *testing.T) {
	uc := usecase.NewOrderQueryUseCase(&testhelpers.OrderRepositoryStub{}, &testhelpers.HistoryRepositoryStub{})

	if _, err := uc.Get(context.Background(), 42); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderQueryHistoryDefaultLimit(t *testing.T) {
	var gotLimit int
	history := &testhelpers.HistoryRepositoryStub{
		ListByOrderFn: func(_ context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
			if orderID != 5 {
				t.Fatalf("unexpected order id %d", orderID)
			}
			gotLimit = limit
			return []model.HistoryEntry{{OrderID: orderID}}, nil
		},
	}
	uc := usecase.NewOrderQueryUseCase(&testhelpers.OrderRepositoryStub{}, history)

	entries, err := uc.History(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 5 {
		t.Fatalf("expected default limit 5, got %d", gotLimit)
	}
	if len(entries) != 1 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestOrderQueryStatusCounts(t *testing.T) {
	counts := []model.StatusCount{
		{Status: model.OrderStatusPending, Count: 3},
		{Status: model.OrderStatusCompleted, Count: 7},
	}
	uc := usecase.NewOrderQueryUseCase(&testhelpers.OrderRepositoryStub{Counts: counts}, &testhelpers.HistoryRepositoryStub{})

	got, err := uc.StatusCounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Count != 7 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}
