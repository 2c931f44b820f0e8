package service

import (
	"context"
	"fmt"
	"math"

	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

type RateSource interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
}

// CurrencyConverter gives the advisory INR figure shown for QR deposits.
// It never affects ledger amounts, which stay in USD.
type CurrencyConverter interface {
	Convert(ctx context.Context, amountUSD decimal.Decimal) (int64, error)
	Rate(ctx context.Context) (decimal.Decimal, error)
}

var maxRupees = decimal.NewFromInt(math.MaxInt64)

type currencyConverter struct {
	source RateSource
}

func NewCurrencyConverter(source RateSource) *currencyConverter {
	return &currencyConverter{source: source}
}

func (c *currencyConverter) Rate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := c.source.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s", pkgerrors.ErrRateUnavailable, rate.String())
	}
	return rate, nil
}

// Convert rounds up to whole rupees so the payer never sends less than the USD amount.
func (c *currencyConverter) Convert(ctx context.Context, amountUSD decimal.Decimal) (int64, error) {
	ctx, span := otel.Tracer("currency-converter").Start(ctx, "Convert")
	defer span.End()

	if amountUSD.IsNegative() {
		return 0, failSpan(span, pkgerrors.ErrInvalidAmount, "negative amount")
	}
	rate, err := c.Rate(ctx)
	if err != nil {
		return 0, failSpan(span, err, "rate unavailable")
	}
	inr := amountUSD.Mul(rate).Ceil()
	if inr.GreaterThan(maxRupees) {
		return 0, failSpan(span, fmt.Errorf("%w: %s USD does not fit in rupees", pkgerrors.ErrInvalidAmount, amountUSD.String()), "amount too large")
	}
	return inr.IntPart(), nil
}
