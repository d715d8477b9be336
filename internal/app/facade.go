package app

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

// PanelFacade aggregates the panel use cases behind a single surface
// consumed by the HTTP layer.
type PanelFacade struct {
	auth        *usecase.AuthUseCase
	transitions *usecase.TransitionUseCase
	queries     *usecase.OrderQueryUseCase
}

// NewPanelFacade constructs PanelFacade.
func NewPanelFacade(auth *usecase.AuthUseCase, transitions *usecase.TransitionUseCase, queries *usecase.OrderQueryUseCase) *PanelFacade {
	return &PanelFacade{auth: auth, transitions: transitions, queries: queries}
}

func (f *PanelFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *PanelFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PanelFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PanelFacade) ApplyTransition(ctx context.Context, req usecase.TransitionRequest) (*model.Order, error) {
	return f.transitions.ApplyTransition(ctx, req)
}

func (f *PanelFacade) Orders(ctx context.Context, status *model.OrderStatus, page, pageSize int) ([]model.OrderView, error) {
	if page < 1 {
		page = 1
	}
	return f.queries.List(ctx, status, pageSize, (page-1)*pageSize)
}

func (f *PanelFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.queries.Get(ctx, id)
}

func (f *PanelFacade) OrderHistory(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error) {
	return f.queries.History(ctx, orderID, limit)
}

func (f *PanelFacade) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	return f.queries.StatusCounts(ctx)
}
