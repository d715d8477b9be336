package dto

import (
	"time"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// TransitionRequest describes an operator-requested status change.
type TransitionRequest struct {
	Status     string `json:"status" binding:"required"`
	Remains    *int64 `json:"remains,omitempty"`
	StartCount *int64 `json:"start_count,omitempty"`
}

// OrderResponse describes an order in API responses. Monetary values are
// rendered with two decimal places; rounding happens only here.
type OrderResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	ServiceID  int64  `json:"service_id"`
	Amount     string `json:"amount"`
	Quantity   int64  `json:"quantity"`
	Remains    int64  `json:"remains"`
	StartCount *int64 `json:"start_count,omitempty"`
	Status     string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderViewResponse enriches an order with service and user names.
type OrderViewResponse struct {
	OrderResponse
	ServiceName string `json:"service_name"`
	Username    string `json:"username"`
}

// HistoryResponse describes one status transition record.
type HistoryResponse struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Notes     string    `json:"notes"`
}

// StatusCountResponse carries one tab badge value.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ToOrderResponse converts a domain order.
func ToOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		ServiceID:  o.ServiceID,
		Amount:     o.Amount.StringFixed(2),
		Quantity:   o.Quantity,
		Remains:    o.Remains,
		StartCount: o.StartCount,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ToOrderViewResponse converts a listing row.
func ToOrderViewResponse(v model.OrderView) OrderViewResponse {
	return OrderViewResponse{
		OrderResponse: ToOrderResponse(v.Order),
		ServiceName:   v.ServiceName,
		Username:      v.Username,
	}
}
