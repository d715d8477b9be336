package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	pkgAuth "github.com/avolkoff/orderpanel/internal/pkg/auth"
	testhelpers "github.com/avolkoff/orderpanel/internal/test"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	admins := testhelpers.NewAdminRepositoryStub()
	uc := usecase.NewAuthUseCase(admins, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(id int64) (string, error) { return "issued", nil },
	})

	admin, token, err := uc.Register(context.Background(), "operator", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Login != "operator" || token != "issued" {
		t.Fatalf("unexpected result: %+v token=%s", admin, token)
	}
	if admins.Admins["operator"].PasswordHash != "hash:secret" {
		t.Fatalf("password must be stored hashed, got %s", admins.Admins["operator"].PasswordHash)
	}
}

func TestAuthUseCaseRegisterRejectsEmptyCredentials(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewAdminRepositoryStub(), testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	cases := [][2]string{{"", "secret"}, {"operator", ""}, {"   ", "secret"}}
	for _, c := range cases {
		if _, _, err := uc.Register(context.Background(), c[0], c[1]); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("login=%q password=%q: expected invalid credentials, got %v", c[0], c[1], err)
		}
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	admins := testhelpers.NewAdminRepositoryStub()
	uc := usecase.NewAuthUseCase(admins, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	if _, _, err := uc.Register(context.Background(), "operator", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "operator", "other"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	admins := testhelpers.NewAdminRepositoryStub()
	uc := usecase.NewAuthUseCase(admins, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	if _, _, err := uc.Register(context.Background(), "operator", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, token, err := uc.Authenticate(context.Background(), "operator", "secret"); err != nil || token == "" {
		t.Fatalf("expected token, got %q err=%v", token, err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "operator", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown login must map to invalid credentials, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewAdminRepositoryStub(), testhelpers.HasherStub{}, testhelpers.StrategyStub{
		ParseFn: func(token string) (int64, error) {
			if token != "good" {
				return 0, pkgAuth.ErrInvalidToken
			}
			return 9, nil
		},
	})

	if id, err := uc.ParseToken("good"); err != nil || id != 9 {
		t.Fatalf("expected id 9, got %d err=%v", id, err)
	}
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("empty token must be invalid, got %v", err)
	}
	if _, err := uc.ParseToken("bad"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
