package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/server/http/handlers"
	testhelpers "github.com/avolkoff/orderpanel/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.PanelFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{},
		OrderFacadeStub: testhelpers.OrderFacadeStub{
			CountsFn: func(context.Context) ([]model.StatusCount, error) {
				return []model.StatusCount{{Status: model.OrderStatusPending, Count: 2}}, nil
			},
		},
	}
	engine := Setup(facade, 20, 100, logger)

	body, _ := json.Marshal(map[string]string{"login": "operator", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders/counts", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for counts, got %d", resp.Code)
	}

	// Order endpoints require authentication.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}
}

var _ handlers.PanelFacade = (*testhelpers.PanelFacadeStub)(nil)
