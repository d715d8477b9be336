package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds the ledger fields mutated by order transitions: spendable
// balance, funds escrowed against open orders, and cumulative spend.
type User struct {
	ID                int64
	Username          string
	Email             string
	Balance           decimal.Decimal
	InUse             decimal.Decimal
	Spent             decimal.Decimal
	EmailOrderUpdates bool
	CreatedAt         time.Time
}

// Admin is an operator account for the panel.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
