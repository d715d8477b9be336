package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/avolkoff/orderpanel/internal/domain/errors"
	"github.com/avolkoff/orderpanel/internal/domain/model"
	"github.com/avolkoff/orderpanel/internal/server/http/dto"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

// OrderHandler manages the admin order endpoints.
type OrderHandler struct {
	facade      OrderFacade
	pageSize    int
	maxPageSize int
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, pageSize, maxPageSize int) *OrderHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &OrderHandler{facade: facade, pageSize: pageSize, maxPageSize: maxPageSize}
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	var status *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := model.ParseOrderStatus(raw)
		if !ok {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		status = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(c.Query("per_page"))
	if perPage < 1 {
		perPage = h.pageSize
	}
	if perPage > h.maxPageSize {
		perPage = h.maxPageSize
	}

	orders, err := h.facade.Orders(c.Request.Context(), status, page, perPage)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderViewResponse, 0, len(orders))
	for _, v := range orders {
		resp = append(resp, dto.ToOrderViewResponse(v))
	}
	c.JSON(http.StatusOK, resp)
}

// Counts handles GET /api/admin/orders/counts.
func (h *OrderHandler) Counts(c *gin.Context) {
	counts, err := h.facade.StatusCounts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.StatusCountResponse, 0, len(counts))
	for _, sc := range counts {
		resp = append(resp, dto.StatusCountResponse{Status: string(sc.Status), Count: sc.Count})
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/admin/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// History handles GET /api/admin/orders/:id/history.
func (h *OrderHandler) History(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.facade.OrderHistory(c.Request.Context(), id, limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.HistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.HistoryResponse{
			OldStatus: string(e.OldStatus),
			NewStatus: string(e.NewStatus),
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt,
			Notes:     e.Notes,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles POST /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ApplyTransition(c.Request.Context(), usecase.TransitionRequest{
		OrderID:    id,
		Status:     model.OrderStatus(req.Status),
		Remains:    req.Remains,
		StartCount: req.StartCount,
		Actor:      currentActor(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrUnknownStatus), errors.Is(err, domainErrors.ErrInvalidRemains):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}
