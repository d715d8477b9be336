package test

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	ApplyFn   func(context.Context, usecase.TransitionRequest) (*model.Order, error)
	OrdersFn  func(context.Context, *model.OrderStatus, int, int) ([]model.OrderView, error)
	OrderFn   func(context.Context, int64) (*model.Order, error)
	HistoryFn func(context.Context, int64, int) ([]model.HistoryEntry, error)
	CountsFn  func(context.Context) ([]model.StatusCount, error)
}

// ApplyTransition delegates to the provided function or returns an order in
// the requested status.
func (s OrderFacadeStub) ApplyTransition(ctx context.Context, req usecase.TransitionRequest) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, req)
	}
	return &model.Order{ID: req.OrderID, Status: req.Status}, nil
}

// Orders returns predefined order views.
func (s OrderFacadeStub) Orders(ctx context.Context, status *model.OrderStatus, page, pageSize int) ([]model.OrderView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status, page, pageSize)
	}
	return []model.OrderView{{Order: model.Order{ID: 1, Status: model.OrderStatusPending}}}, nil
}

// Order returns a predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// OrderHistory returns predefined history entries.
func (s OrderFacadeStub) OrderHistory(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, orderID, limit)
	}
	return []model.HistoryEntry{{OrderID: orderID, OldStatus: model.OrderStatusPending, NewStatus: model.OrderStatusProcessing}}, nil
}

// StatusCounts returns predefined per-status totals.
func (s OrderFacadeStub) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	if s.CountsFn != nil {
		return s.CountsFn(ctx)
	}
	return []model.StatusCount{{Status: model.OrderStatusPending, Count: 1}}, nil
}

// PanelFacadeStub aggregates facade dependencies for HTTP layer tests.
type PanelFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
}
