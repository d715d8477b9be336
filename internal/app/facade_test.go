package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	testhelpers "github.com/avolkoff/orderpanel/internal/test"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

func newFacade() (*PanelFacade, *testhelpers.AdminRepositoryStub, *testhelpers.MemoryStore, *testhelpers.OrderRepositoryStub, *testhelpers.HistoryRepositoryStub) {
	admins := testhelpers.NewAdminRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(admins, testhelpers.HasherStub{}, strategy)

	store := testhelpers.NewMemoryStore()
	transitionUC := usecase.NewTransitionUseCase(store, &testhelpers.NotifierStub{})

	orders := &testhelpers.OrderRepositoryStub{}
	history := &testhelpers.HistoryRepositoryStub{}
	queryUC := usecase.NewOrderQueryUseCase(orders, history)

	facade := NewPanelFacade(authUC, transitionUC, queryUC)
	return facade, admins, store, orders, history
}

func TestPanelFacadeAuth(t *testing.T) {
	facade, admins, _, _, _ := newFacade()

	token, err := facade.Register(context.Background(), "operator", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := admins.GetByLogin(context.Background(), "operator")
	if err != nil {
		t.Fatalf("admin not stored: %v", err)
	}
	if stored.Login != "operator" {
		t.Fatalf("unexpected stored login %q", stored.Login)
	}

	token, err = facade.Authenticate(context.Background(), "operator", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestPanelFacadeApplyTransition(t *testing.T) {
	facade, _, store, _, _ := newFacade()
	amount := decimal.RequireFromString("10.00")
	store.SeedOrder(model.Order{ID: 1, UserID: 7, Amount: amount, Quantity: 100, Remains: 100, Status: model.OrderStatusProcessing})
	store.SeedUser(model.User{ID: 7, InUse: amount})

	order, err := facade.ApplyTransition(context.Background(), usecase.TransitionRequest{
		OrderID: 1,
		Status:  model.OrderStatusCompleted,
	})
	if err != nil {
		t.Fatalf("apply transition returned error: %v", err)
	}
	if order.Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected status %s", order.Status)
	}

	user, _ := store.User(7)
	if !user.Spent.Equal(amount) {
		t.Fatalf("expected spent %s, got %s", amount, user.Spent)
	}

	if _, err := facade.ApplyTransition(context.Background(), usecase.TransitionRequest{OrderID: 2, Status: model.OrderStatusCompleted}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPanelFacadeOrders(t *testing.T) {
	facade, _, _, orders, history := newFacade()

	var gotLimit, gotOffset int
	orders.ListFn = func(_ context.Context, _ *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
		gotLimit, gotOffset = limit, offset
		return []model.OrderView{{Order: model.Order{ID: 1}}}, nil
	}

	listed, err := facade.Orders(context.Background(), nil, 3, 10)
	if err != nil || len(listed) != 1 {
		t.Fatalf("unexpected listing result: %v err=%v", listed, err)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Fatalf("expected limit 10 offset 20, got %d/%d", gotLimit, gotOffset)
	}

	orders.Views = []model.OrderView{{Order: model.Order{ID: 5, Status: model.OrderStatusPending}}}
	orders.ListFn = nil
	order, err := facade.Order(context.Background(), 5)
	if err != nil || order.ID != 5 {
		t.Fatalf("unexpected order result: %v err=%v", order, err)
	}

	history.Entries = []model.HistoryEntry{{OrderID: 5}}
	entries, err := facade.OrderHistory(context.Background(), 5, 0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("unexpected history result: %v err=%v", entries, err)
	}

	orders.Counts = []model.StatusCount{{Status: model.OrderStatusPending, Count: 4}}
	counts, err := facade.StatusCounts(context.Background())
	if err != nil || len(counts) != 1 || counts[0].Count != 4 {
		t.Fatalf("unexpected counts result: %v err=%v", counts, err)
	}
}
