package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID             string          `json:"order_id"`
	UserID         *int64          `json:"user_id,omitempty"`
	Platform       string          `json:"platform"`
	Service        string          `json:"service"`
	Link           *string         `json:"link,omitempty"`
	Quantity       int32           `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PaidFromWallet bool            `json:"paid_from_wallet"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}
