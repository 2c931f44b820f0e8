package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/boost-wallet/internal/models"
	repositorymocks "github.com/honeynil/boost-wallet/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "is decimal " + m.want.String()
}

func decEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

// passThroughTx runs callbacks inline, the way a committing transaction would.
func passThroughTx(tx *repositorymocks.MockTransactor) {
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	tx.EXPECT().AfterCommit(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, fn func()) { fn() }).AnyTimes()
}

func decodeEvent(t *testing.T, value []byte) models.WalletEvent {
	t.Helper()
	var event models.WalletEvent
	require.NoError(t, json.Unmarshal(value, &event))
	return event
}
