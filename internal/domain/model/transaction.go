package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a monetary movement.
type TransactionType string

// TransactionStatus marks settlement state of a transaction record.
type TransactionStatus string

const (
	TransactionTypeRefund TransactionType = "refund"

	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is an append-only record of a monetary movement. Records are
// never mutated or deleted once written.
type Transaction struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Type        TransactionType
	Status      TransactionStatus
	Reference   string
	Description string
	CreatedAt   time.Time
}
