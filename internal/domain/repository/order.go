package repository

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// OrderRepository describes read-side persistence operations with orders.
// Writes happen exclusively through a unit of work.
type OrderRepository interface {
	Get(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.OrderView, error)
	StatusCounts(ctx context.Context) ([]model.StatusCount, error)
}
