package repository

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// UserRepository reads customer accounts and their notification settings.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AdminRepository describes persistence operations for operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.Admin, error)
	GetByLogin(ctx context.Context, login string) (*model.Admin, error)
}
