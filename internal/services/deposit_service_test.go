package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	kafkamocks "github.com/honeynil/boost-wallet/internal/infrastructure/kafka/mocks"
	redismocks "github.com/honeynil/boost-wallet/internal/infrastructure/redis/mocks"
	"github.com/honeynil/boost-wallet/internal/models"
	repositorymocks "github.com/honeynil/boost-wallet/internal/repository/mocks"
	service "github.com/honeynil/boost-wallet/internal/services"
	servicemocks "github.com/honeynil/boost-wallet/internal/services/mocks"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type depositFixture struct {
	deposits     *repositorymocks.MockDepositRepository
	transactions *repositorymocks.MockTransactionRepository
	wallets      *servicemocks.MockWalletService
	converter    *servicemocks.MockCurrencyConverter
	proofs       *servicemocks.MockProofStore
	redisClient  *redismocks.MockRedisClient
	producer     *kafkamocks.MockKafkaProducer
	service      service.DepositService
}

func newDepositFixture(t *testing.T) *depositFixture {
	ctrl := gomock.NewController(t)
	tx := repositorymocks.NewMockTransactor(ctrl)
	passThroughTx(tx)

	f := &depositFixture{
		deposits:     repositorymocks.NewMockDepositRepository(ctrl),
		transactions: repositorymocks.NewMockTransactionRepository(ctrl),
		wallets:      servicemocks.NewMockWalletService(ctrl),
		converter:    servicemocks.NewMockCurrencyConverter(ctrl),
		proofs:       servicemocks.NewMockProofStore(ctrl),
		redisClient:  redismocks.NewMockRedisClient(ctrl),
		producer:     kafkamocks.NewMockKafkaProducer(ctrl),
	}
	f.service = service.NewDepositService(
		f.deposits,
		f.transactions,
		f.wallets,
		f.converter,
		f.proofs,
		f.redisClient,
		tx,
		service.NewEventPublisher(f.producer, "wallet-events"),
	)
	return f
}

func TestDepositService_CreateDepositRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("validation precedes any side effect", func(t *testing.T) {
		f := newDepositFixture(t)
		cases := []struct {
			name string
			in   service.CreateDepositInput
			want error
		}{
			{"below minimum", service.CreateDepositInput{UserID: 1, Amount: decimal.RequireFromString("0.99"), PaymentMethod: models.PaymentMethodQR, Screenshot: "p"}, pkgerrors.ErrInvalidAmount},
			{"above column range", service.CreateDepositInput{UserID: 1, Amount: decimal.RequireFromString("1000000000000"), PaymentMethod: models.PaymentMethodQR, Screenshot: "p"}, pkgerrors.ErrInvalidAmount},
			{"zero", service.CreateDepositInput{UserID: 1, Amount: decimal.Zero, PaymentMethod: models.PaymentMethodQR, Screenshot: "p"}, pkgerrors.ErrInvalidAmount},
			{"unknown method", service.CreateDepositInput{UserID: 1, Amount: decimal.NewFromInt(5), PaymentMethod: "paypal", Screenshot: "p"}, pkgerrors.ErrInvalidPaymentMethod},
			{"missing proof", service.CreateDepositInput{UserID: 1, Amount: decimal.NewFromInt(5), PaymentMethod: models.PaymentMethodCrypto, Screenshot: "  "}, pkgerrors.ErrMissingProof},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				d, err := f.service.CreateDepositRequest(ctx, tc.in)
				assert.Nil(t, d)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("minimum message", func(t *testing.T) {
		f := newDepositFixture(t)
		_, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID: 1, Amount: decimal.RequireFromString("0.5"), PaymentMethod: models.PaymentMethodQR, Screenshot: "p",
		})
		assert.EqualError(t, err, "invalid amount: minimum deposit amount is $1")
	})

	t.Run("qr deposit gets inr amount and stays pending", func(t *testing.T) {
		f := newDepositFixture(t)
		currency := "BTC"

		f.converter.EXPECT().Convert(gomock.Any(), decEq("1")).Return(int64(84), nil)
		f.proofs.EXPECT().Save(gomock.Any(), int64(1), "data:image/png;base64,AAAA").Return("proof-ref", nil)
		f.deposits.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d *models.Deposit) error {
			assert.NotEmpty(t, d.ID)
			assert.Equal(t, models.DepositPending, d.Status)
			assert.Equal(t, "proof-ref", d.Screenshot)
			assert.Nil(t, d.Currency)
			return nil
		})
		f.producer.EXPECT().Send(gomock.Any(), "wallet-events", int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, value []byte) error {
				event := decodeEvent(t, value)
				assert.Equal(t, models.EventDepositCreated, event.EventType)
				assert.Nil(t, event.Balance)
				return nil
			})

		d, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID:        1,
			Amount:        decimal.RequireFromString("1.00"),
			PaymentMethod: models.PaymentMethodQR,
			Currency:      &currency,
			Screenshot:    "data:image/png;base64,AAAA",
		})
		require.NoError(t, err)
		require.NotNil(t, d.AmountINR)
		assert.Equal(t, int64(84), *d.AmountINR)
		assert.Equal(t, models.DepositPending, d.Status)
	})

	t.Run("crypto deposit defaults currency and drops inr", func(t *testing.T) {
		f := newDepositFixture(t)
		inr := int64(1000)

		f.proofs.EXPECT().Save(gomock.Any(), int64(2), "proof").Return("proof", nil)
		f.deposits.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.producer.EXPECT().Send(gomock.Any(), gomock.Any(), int64(2), gomock.Any()).Return(nil)

		d, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID:        2,
			Amount:        decimal.NewFromInt(20),
			AmountINR:     &inr,
			PaymentMethod: models.PaymentMethodCrypto,
			Screenshot:    "proof",
		})
		require.NoError(t, err)
		assert.Nil(t, d.AmountINR)
		require.NotNil(t, d.Currency)
		assert.Equal(t, "USDT", *d.Currency)
	})

	t.Run("kafka failure does not fail the request", func(t *testing.T) {
		f := newDepositFixture(t)
		inr := int64(418)

		f.proofs.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("proof", nil)
		f.deposits.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		d, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID: 1, Amount: decimal.NewFromInt(5), AmountINR: &inr, PaymentMethod: models.PaymentMethodQR, Screenshot: "proof",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(418), *d.AmountINR)
	})

	t.Run("duplicate request id", func(t *testing.T) {
		f := newDepositFixture(t)
		f.redisClient.EXPECT().SetNX(gomock.Any(), "deposit-request:req-1", int64(1), 24*time.Hour).Return(false, nil)

		d, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID: 1, Amount: decimal.NewFromInt(5), PaymentMethod: models.PaymentMethodCrypto, Screenshot: "proof", RequestID: "req-1",
		})
		assert.Nil(t, d)
		assert.ErrorIs(t, err, pkgerrors.ErrRequestAlreadyProcessed)
	})

	t.Run("failed store releases request id", func(t *testing.T) {
		f := newDepositFixture(t)
		storeErr := fmt.Errorf("failed to create deposit: %w", pkgerrors.ErrStoreUnavailable)

		f.redisClient.EXPECT().SetNX(gomock.Any(), "deposit-request:req-2", int64(1), 24*time.Hour).Return(true, nil)
		f.proofs.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("proof", nil)
		f.deposits.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storeErr)
		f.redisClient.EXPECT().Del(gomock.Any(), "deposit-request:req-2").Return(nil)

		_, err := f.service.CreateDepositRequest(ctx, service.CreateDepositInput{
			UserID: 1, Amount: decimal.NewFromInt(5), PaymentMethod: models.PaymentMethodCrypto, Screenshot: "proof", RequestID: "req-2",
		})
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
	})
}

func TestDepositService_ApproveDeposit(t *testing.T) {
	ctx := context.Background()
	pendingFinalized := func(id string, userID int64, amount string, method models.PaymentMethod) *models.Deposit {
		return &models.Deposit{
			ID:            id,
			UserID:        userID,
			Amount:        decimal.RequireFromString(amount),
			PaymentMethod: method,
			Status:        models.DepositCompleted,
		}
	}

	t.Run("credits wallet once and records ledger entry", func(t *testing.T) {
		f := newDepositFixture(t)
		d := pendingFinalized("dep-1", 1, "25", models.PaymentMethodQR)

		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-1", models.DepositCompleted).Return(d, nil)
		f.wallets.EXPECT().AdjustBalance(gomock.Any(), int64(1), decEq("25")).Return(decimal.NewFromInt(25), nil)
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *models.Transaction) (string, error) {
			assert.Equal(t, models.TypeDeposit, tx.Type)
			assert.True(t, tx.Amount.Equal(decimal.NewFromInt(25)))
			assert.Equal(t, "Deposit of $25.00 via QR/UPI", tx.Description)
			require.NotNil(t, tx.ReferenceID)
			assert.Equal(t, "dep-1", *tx.ReferenceID)
			return "tx-1", nil
		})
		f.producer.EXPECT().Send(gomock.Any(), "wallet-events", int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, value []byte) error {
				event := decodeEvent(t, value)
				assert.Equal(t, models.EventDepositApproved, event.EventType)
				require.NotNil(t, event.Balance)
				assert.True(t, event.Balance.Equal(decimal.NewFromInt(25)))
				return nil
			})

		approved, err := f.service.ApproveDeposit(ctx, "dep-1")
		require.NoError(t, err)
		assert.Equal(t, models.DepositCompleted, approved.Status)
	})

	t.Run("crypto description", func(t *testing.T) {
		f := newDepositFixture(t)
		d := pendingFinalized("dep-2", 3, "7.5", models.PaymentMethodCrypto)

		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-2", models.DepositCompleted).Return(d, nil)
		f.wallets.EXPECT().AdjustBalance(gomock.Any(), int64(3), decEq("7.5")).Return(decimal.RequireFromString("7.5"), nil)
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *models.Transaction) (string, error) {
			assert.Equal(t, "Deposit of $7.50 via Cryptocurrency", tx.Description)
			return "tx-2", nil
		})
		f.producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.service.ApproveDeposit(ctx, "dep-2")
		require.NoError(t, err)
	})

	t.Run("second approval is refused without credit", func(t *testing.T) {
		f := newDepositFixture(t)
		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-1", models.DepositCompleted).
			Return(nil, fmt.Errorf("%w: deposit dep-1 is completed", pkgerrors.ErrAlreadyFinalized))

		d, err := f.service.ApproveDeposit(ctx, "dep-1")
		assert.Nil(t, d)
		assert.ErrorIs(t, err, pkgerrors.ErrAlreadyFinalized)
	})

	t.Run("unknown deposit", func(t *testing.T) {
		f := newDepositFixture(t)
		f.deposits.EXPECT().Finalize(gomock.Any(), "nope", models.DepositCompleted).Return(nil, pkgerrors.ErrDepositNotFound)

		_, err := f.service.ApproveDeposit(ctx, "nope")
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
	})

	t.Run("ledger failure aborts without event", func(t *testing.T) {
		f := newDepositFixture(t)
		d := pendingFinalized("dep-3", 1, "10", models.PaymentMethodQR)

		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-3", models.DepositCompleted).Return(d, nil)
		f.wallets.EXPECT().AdjustBalance(gomock.Any(), int64(1), decEq("10")).Return(decimal.NewFromInt(10), nil)
		f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", pkgerrors.ErrStoreUnavailable)

		_, err := f.service.ApproveDeposit(ctx, "dep-3")
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
	})
}

func TestDepositService_RejectDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects without touching wallet", func(t *testing.T) {
		f := newDepositFixture(t)
		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-1", models.DepositRejected).Return(&models.Deposit{
			ID: "dep-1", UserID: 1, Amount: decimal.NewFromInt(5), Status: models.DepositRejected,
		}, nil)
		f.producer.EXPECT().Send(gomock.Any(), gomock.Any(), int64(1), gomock.Any()).Return(nil)

		d, err := f.service.RejectDeposit(ctx, "dep-1")
		require.NoError(t, err)
		assert.Equal(t, models.DepositRejected, d.Status)
	})

	t.Run("terminal deposit", func(t *testing.T) {
		f := newDepositFixture(t)
		f.deposits.EXPECT().Finalize(gomock.Any(), "dep-1", models.DepositRejected).Return(nil, pkgerrors.ErrAlreadyFinalized)

		_, err := f.service.RejectDeposit(ctx, "dep-1")
		assert.ErrorIs(t, err, pkgerrors.ErrAlreadyFinalized)
	})
}

func TestDepositService_Queries(t *testing.T) {
	ctx := context.Background()
	f := newDepositFixture(t)

	pending := []models.Deposit{{ID: "b"}, {ID: "a"}}
	f.deposits.EXPECT().ListByStatus(gomock.Any(), models.DepositPending).Return(pending, nil)
	f.deposits.EXPECT().ListByUser(gomock.Any(), int64(4)).Return([]models.Deposit{}, nil)

	got, err := f.service.GetPendingDeposits(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending, got)

	mine, err := f.service.GetUserDeposits(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, mine)

	f.deposits.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, pkgerrors.ErrDepositNotFound)
	_, err = f.service.GetDeposit(ctx, "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}
