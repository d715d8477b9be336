package model

import "time"

// SystemActor marks history entries recorded without an authenticated admin.
const SystemActor = "system"

// HistoryEntry is an append-only record of a single status transition.
// One entry exists per transition where the status actually changed.
type HistoryEntry struct {
	ID        int64
	OrderID   int64
	OldStatus OrderStatus
	NewStatus OrderStatus
	ChangedBy string
	ChangedAt time.Time
	Notes     string
}
