package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrWalletNotFound  = fmt.Errorf("wallet %w", ErrNotFound)
	ErrDepositNotFound = fmt.Errorf("deposit %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrAdminNotFound   = fmt.Errorf("admin %w", ErrNotFound)

	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrMissingProof            = errors.New("payment screenshot is required")
	ErrAlreadyFinalized        = errors.New("deposit already finalized")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrRequestAlreadyProcessed = errors.New("request already processed")
	ErrRateUnavailable         = errors.New("exchange rate unavailable")

	ErrNilDeposit             = errors.New("deposit is nil")
	ErrNilTransaction         = errors.New("transaction is nil")
	ErrNilOrder               = errors.New("order is nil")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidOrder           = errors.New("invalid order")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)
