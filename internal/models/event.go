package models

import "github.com/shopspring/decimal"

type EventType string

const (
	EventDepositCreated  EventType = "deposit_created"
	EventDepositApproved EventType = "deposit_approved"
	EventDepositRejected EventType = "deposit_rejected"
	EventPurchaseSettled EventType = "purchase_settled"
)

// WalletEvent is published to Kafka after a ledger change commits.
type WalletEvent struct {
	EventType   EventType        `json:"event_type"`
	UserID      int64            `json:"user_id"`
	ReferenceID string           `json:"reference_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt   string           `json:"created_at"`
}
