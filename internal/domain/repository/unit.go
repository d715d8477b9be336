package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// UnitRunner executes a function inside an atomic unit of work. Every write
// performed through the unit commits or rolls back as a whole; on error
// nothing is applied.
type UnitRunner interface {
	WithinUnit(ctx context.Context, fn func(UnitOfWork) error) error
}

// UnitOfWork exposes the transaction-scoped repositories used by a single
// order transition.
type UnitOfWork interface {
	Orders() OrderUnit
	Ledger() Ledger
	Transactions() TransactionUnit
	History() HistoryUnit
}

// OrderUnit reads and writes orders under the unit's isolation. GetForUpdate
// locks the order row so concurrent transitions on the same order serialize.
type OrderUnit interface {
	GetForUpdate(ctx context.Context, id int64) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
}

// Ledger applies atomic additive adjustments to a user's balance fields.
// Deltas may be negative; resulting signs are not validated here.
type Ledger interface {
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) error
	AdjustInUse(ctx context.Context, userID int64, delta decimal.Decimal) error
	AdjustSpent(ctx context.Context, userID int64, delta decimal.Decimal) error
}

// TransactionUnit appends monetary movement records.
type TransactionUnit interface {
	Append(ctx context.Context, tx *model.Transaction) error
}

// HistoryUnit appends status transition records.
type HistoryUnit interface {
	Append(ctx context.Context, entry *model.HistoryEntry) error
}
