package handlers

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	ApplyTransition(ctx context.Context, req usecase.TransitionRequest) (*model.Order, error)
	Orders(ctx context.Context, status *model.OrderStatus, page, pageSize int) ([]model.OrderView, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	OrderHistory(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error)
	StatusCounts(ctx context.Context) ([]model.StatusCount, error)
}

// PanelFacade aggregates the full set of operations used across handlers.
type PanelFacade interface {
	AuthFacade
	OrderFacade
}
