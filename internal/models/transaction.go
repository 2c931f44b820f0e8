package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger entry. Amount is signed:
// deposits are positive, purchases negative.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	UserID      int64           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypePurchase TransactionType = "purchase"
)

func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypePurchase
}

// SignMatches reports whether amount carries the sign required by the type.
func (t TransactionType) SignMatches(amount decimal.Decimal) bool {
	switch t {
	case TypeDeposit:
		return amount.IsPositive()
	case TypePurchase:
		return amount.IsNegative()
	}
	return false
}
