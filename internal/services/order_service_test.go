package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/boost-wallet/internal/models"
	repositorymocks "github.com/honeynil/boost-wallet/internal/repository/mocks"
	service "github.com/honeynil/boost-wallet/internal/services"
	servicemocks "github.com/honeynil/boost-wallet/internal/services/mocks"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)

	setup := func(t *testing.T) (*repositorymocks.MockOrderRepository, *servicemocks.MockSettlementService, service.OrderService) {
		ctrl := gomock.NewController(t)
		orders := repositorymocks.NewMockOrderRepository(ctrl)
		settlement := servicemocks.NewMockSettlementService(ctrl)
		tx := repositorymocks.NewMockTransactor(ctrl)
		passThroughTx(tx)
		return orders, settlement, service.NewOrderService(orders, settlement, tx)
	}
	valid := func() service.PlaceOrderInput {
		return service.PlaceOrderInput{
			Platform: "Instagram",
			Service:  "Followers",
			Quantity: 1000,
			Total:    decimal.RequireFromString("4.99"),
			Name:     "Ann",
			Email:    "ann@example.com",
		}
	}

	t.Run("guest order is stored without settlement", func(t *testing.T) {
		orders, _, svc := setup(t)
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *models.Order) error {
			assert.Nil(t, o.UserID)
			assert.Equal(t, models.OrderPending, o.Status)
			assert.False(t, o.PaidFromWallet)
			return nil
		})

		o, err := svc.PlaceOrder(ctx, valid())
		require.NoError(t, err)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("wallet order settles against its own id", func(t *testing.T) {
		orders, settlement, svc := setup(t)
		in := valid()
		in.UserID = &userID
		in.PayFromWallet = true

		var created string
		orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *models.Order) error {
			created = o.ID
			return nil
		})
		settlement.EXPECT().SettlePurchase(gomock.Any(), userID, decEq("4.99"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ decimal.Decimal, orderID string) (decimal.Decimal, error) {
				assert.Equal(t, created, orderID)
				return decimal.RequireFromString("5.01"), nil
			})

		o, err := svc.PlaceOrder(ctx, in)
		require.NoError(t, err)
		assert.True(t, o.PaidFromWallet)
	})

	t.Run("unpaid wallet order fails", func(t *testing.T) {
		orders, settlement, svc := setup(t)
		in := valid()
		in.UserID = &userID
		in.PayFromWallet = true

		orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		settlement.EXPECT().SettlePurchase(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(decimal.Zero, pkgerrors.ErrInsufficientBalance)

		o, err := svc.PlaceOrder(ctx, in)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, pkgerrors.ErrInsufficientBalance)
	})

	t.Run("validation", func(t *testing.T) {
		_, _, svc := setup(t)

		noUser := valid()
		noUser.PayFromWallet = true
		_, err := svc.PlaceOrder(ctx, noUser)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidOrder)

		zeroQty := valid()
		zeroQty.Quantity = 0
		_, err = svc.PlaceOrder(ctx, zeroQty)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidOrder)

		badEmail := valid()
		badEmail.Email = "ann"
		_, err = svc.PlaceOrder(ctx, badEmail)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidOrder)

		free := valid()
		free.Total = decimal.Zero
		_, err = svc.PlaceOrder(ctx, free)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)

		huge := valid()
		huge.Total = models.MaxAmount.Add(decimal.RequireFromString("0.01"))
		_, err = svc.PlaceOrder(ctx, huge)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := repositorymocks.NewMockOrderRepository(ctrl)
	tx := repositorymocks.NewMockTransactor(ctrl)
	svc := service.NewOrderService(orders, servicemocks.NewMockSettlementService(ctrl), tx)
	ctx := context.Background()

	_, err := svc.UpdateOrderStatus(ctx, "o1", "shipped")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidOrderStatus)

	orders.EXPECT().UpdateStatus(gomock.Any(), "o1", models.OrderCompleted).Return(&models.Order{ID: "o1", Status: models.OrderCompleted}, nil)
	o, err := svc.UpdateOrderStatus(ctx, "o1", models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, o.Status)

	orders.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, pkgerrors.ErrOrderNotFound)
	_, err = svc.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestOrderService_Listings(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := repositorymocks.NewMockOrderRepository(ctrl)
	svc := service.NewOrderService(orders, servicemocks.NewMockSettlementService(ctrl), repositorymocks.NewMockTransactor(ctrl))
	ctx := context.Background()

	all := []models.Order{{ID: "o2"}, {ID: "o1"}}
	orders.EXPECT().ListAll(gomock.Any()).Return(all, nil)
	got, err := svc.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, all, got)

	orders.EXPECT().ListByEmail(gomock.Any(), "ann@example.com").Return([]models.Order{{ID: "o1"}}, nil)
	byEmail, err := svc.GetOrdersByEmail(ctx, "  ann@example.com ")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	_, err = svc.GetOrdersByEmail(ctx, "ann")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidOrder)
}
