package usecase

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

const defaultHistoryLimit = 5

// OrderQueryUseCase serves the read side of the panel: listings, details,
// transition history and per-status totals.
type OrderQueryUseCase struct {
	orders  repository.OrderRepository
	history repository.HistoryRepository
}

// NewOrderQueryUseCase constructs OrderQueryUseCase.
func NewOrderQueryUseCase(orders repository.OrderRepository, history repository.HistoryRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders, history: history}
}

// List returns orders enriched with service and user names, newest first,
// optionally filtered by status.
func (u *OrderQueryUseCase) List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.orders.List(ctx, status, limit, offset)
}

// Get returns a single order by identifier.
func (u *OrderQueryUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// History returns the most recent transitions for an order.
func (u *OrderQueryUseCase) History(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return u.history.ListByOrder(ctx, orderID, limit)
}

// StatusCounts returns order totals per status for the panel tabs.
func (u *OrderQueryUseCase) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	return u.orders.StatusCounts(ctx)
}
