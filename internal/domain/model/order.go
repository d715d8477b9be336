package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the order lifecycle managed by the admin panel.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusPartial    OrderStatus = "partial"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusFailed     OrderStatus = "failed"
)

// OrderStatuses lists every recognized status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusPartial,
	OrderStatusCancelled,
	OrderStatusFailed,
}

// ParseOrderStatus converts raw input into a status value.
// Unknown values are rejected, never defaulted.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	for _, s := range OrderStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// Terminal reports whether the status settles the order's escrowed funds.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusPartial, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// Order describes a purchased service order. Amount is held in the owner's
// in-use balance from creation until a terminal status releases it.
type Order struct {
	ID         int64
	UserID     int64
	ServiceID  int64
	Amount     decimal.Decimal
	Quantity   int64
	Remains    int64
	StartCount *int64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderView is an order enriched with service and user names for listings.
type OrderView struct {
	Order
	ServiceName string
	Username    string
}

// StatusCount aggregates orders per status for the panel tabs.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}
