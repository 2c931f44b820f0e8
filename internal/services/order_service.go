package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/honeynil/boost-wallet/internal/repository"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PlaceOrderInput struct {
	UserID        *int64
	Platform      string
	Service       string
	Link          *string
	Quantity      int32
	Total         decimal.Decimal
	Name          string
	Email         string
	PayFromWallet bool
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID int64) ([]models.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orders     repository.OrderRepository
	settlement SettlementService
	tx         repository.Transactor
}

func NewOrderService(orders repository.OrderRepository, settlement SettlementService, tx repository.Transactor) *orderService {
	return &orderService{
		orders:     orders,
		settlement: settlement,
		tx:         tx,
	}
}

func validateOrder(in PlaceOrderInput) error {
	switch {
	case strings.TrimSpace(in.Platform) == "", strings.TrimSpace(in.Service) == "":
		return fmt.Errorf("%w: platform and service are required", pkgerrors.ErrInvalidOrder)
	case strings.TrimSpace(in.Name) == "", !strings.Contains(in.Email, "@"):
		return fmt.Errorf("%w: name and a valid email are required", pkgerrors.ErrInvalidOrder)
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", pkgerrors.ErrInvalidOrder)
	case !in.Total.IsPositive():
		return fmt.Errorf("%w: order total must be positive", pkgerrors.ErrInvalidAmount)
	case in.Total.GreaterThan(models.MaxAmount):
		return fmt.Errorf("%w: order total exceeds $%s", pkgerrors.ErrInvalidAmount, models.MaxAmount.StringFixed(2))
	case in.PayFromWallet && in.UserID == nil:
		return fmt.Errorf("%w: wallet payment requires a signed-in user", pkgerrors.ErrInvalidOrder)
	}
	return nil
}

// PlaceOrder stores the order and, for wallet payment, settles it in the same
// transaction: an order that could not be paid is never stored.
func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "PlaceOrder")
	defer span.End()
	span.SetAttributes(attribute.Bool("paid_from_wallet", in.PayFromWallet))

	if err := validateOrder(in); err != nil {
		span.SetStatus(codes.Error, "invalid order")
		return nil, err
	}

	order := &models.Order{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		Platform:       strings.TrimSpace(in.Platform),
		Service:        strings.TrimSpace(in.Service),
		Link:           in.Link,
		Quantity:       in.Quantity,
		Total:          in.Total.Round(2),
		Status:         models.OrderPending,
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.TrimSpace(in.Email),
		PaidFromWallet: in.PayFromWallet,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		if !order.PaidFromWallet {
			return nil
		}
		_, err := s.settlement.SettlePurchase(ctx, *order.UserID, order.Total, order.ID)
		return err
	})
	if err != nil {
		slog.Error("failed to place order", "order_id", order.ID, "paid_from_wallet", order.PaidFromWallet, "error", err)
		return nil, failSpan(span, err, "place order failed")
	}

	slog.Info("order placed", "order_id", order.ID, "total", order.Total.String(), "paid_from_wallet", order.PaidFromWallet)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "GetOrder")
	defer span.End()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, failSpan(span, err, "get order failed")
	}
	return order, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "GetUserOrders")
	defer span.End()

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, failSpan(span, err, "list orders failed")
	}
	return orders, nil
}

func (s *orderService) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "GetOrdersByEmail")
	defer span.End()

	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		span.SetStatus(codes.Error, "invalid email")
		return nil, fmt.Errorf("%w: a valid email is required", pkgerrors.ErrInvalidOrder)
	}

	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, failSpan(span, err, "list orders by email failed")
	}
	return orders, nil
}

// GetAllOrders is the admin dashboard listing, newest first.
func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "GetAllOrders")
	defer span.End()

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, failSpan(span, err, "list all orders failed")
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	ctx, span := otel.Tracer("order-service").Start(ctx, "UpdateOrderStatus")
	defer span.End()

	if !status.Valid() {
		span.SetStatus(codes.Error, "invalid status")
		return nil, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidOrderStatus, status)
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		slog.Error("failed to update order status", "order_id", orderID, "status", status, "error", err)
		return nil, failSpan(span, err, "update order status failed")
	}
	slog.Info("order status updated", "order_id", orderID, "status", status)
	return order, nil
}
