package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
	pkgAuth "github.com/avolkoff/orderpanel/internal/pkg/auth"
)

// AuthUseCase handles operator accounts and token management.
type AuthUseCase struct {
	admins repository.AdminRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(admins repository.AdminRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{admins: admins, hasher: hasher, tokens: strategy}
}

// Register creates an operator account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.Admin, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	admin, err := u.admins.Create(ctx, login, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(admin.ID)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// Authenticate validates operator credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Admin, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	admin, err := u.admins.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(admin.ID)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// ParseToken extracts the admin ID from the provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
