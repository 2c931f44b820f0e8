package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest USD value a NUMERIC(14,2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

type Wallet struct {
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ReconcileReport compares a stored balance with the signed sum of the user's ledger.
type ReconcileReport struct {
	UserID     int64           `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	LedgerSum  decimal.Decimal `json:"ledger_sum"`
	Consistent bool            `json:"consistent"`
}
