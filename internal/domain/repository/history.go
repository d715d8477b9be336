package repository

import (
	"context"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// HistoryRepository provides access to the status transition log.
type HistoryRepository interface {
	ListByOrder(ctx context.Context, orderID int64, limit int) ([]model.HistoryEntry, error)
}

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	Append(ctx context.Context, n *model.Notification) error
}
