package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Deposit struct {
	ID            string          `json:"deposit_id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	AmountINR     *int64          `json:"amount_inr,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Currency      *string         `json:"currency,omitempty"`
	Status        DepositStatus   `json:"status"`
	Screenshot    string          `json:"screenshot,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PaymentMethod string

const (
	PaymentMethodQR     PaymentMethod = "qr"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodQR || m == PaymentMethodCrypto
}

// Label is the human name used in ledger descriptions.
func (m PaymentMethod) Label() string {
	if m == PaymentMethodQR {
		return "QR/UPI"
	}
	return "Cryptocurrency"
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return m, nil
}

type DepositStatus string

const (
	DepositPending   DepositStatus = "pending"
	DepositCompleted DepositStatus = "completed"
	DepositRejected  DepositStatus = "rejected"
)

func (s DepositStatus) Valid() bool {
	switch s {
	case DepositPending, DepositCompleted, DepositRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s DepositStatus) Terminal() bool {
	return s == DepositCompleted || s == DepositRejected
}

const DefaultCryptoCurrency = "USDT"

// MinDepositAmount is the smallest deposit in USD.
var MinDepositAmount = decimal.NewFromInt(1)

// WithoutInlineProofs blanks screenshots stored inline as data URIs so that
// listings stay small; the full deposit is fetched one at a time.
func WithoutInlineProofs(deposits []Deposit) []Deposit {
	out := make([]Deposit, len(deposits))
	for i, d := range deposits {
		if strings.HasPrefix(d.Screenshot, "data:") {
			d.Screenshot = ""
		}
		out[i] = d
	}
	return out
}
