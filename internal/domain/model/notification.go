package model

import "time"

// NotificationType groups notifications in the user inbox.
type NotificationType string

const (
	NotificationTypeOrderUpdate    NotificationType = "order_update"
	NotificationTypeOrderCompleted NotificationType = "order_completed"
	NotificationTypeOrderCancelled NotificationType = "order_cancelled"
	NotificationTypeOrderFailed    NotificationType = "order_failed"
)

// Notification is an in-app message about an order status change.
type Notification struct {
	ID          int64
	UserID      int64
	Title       string
	Message     string
	Type        NotificationType
	ReferenceID int64
	Read        bool
	CreatedAt   time.Time
}
