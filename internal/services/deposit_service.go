package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/boost-wallet/internal/infrastructure/observability"
	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	"github.com/honeynil/boost-wallet/internal/models"
	"github.com/honeynil/boost-wallet/internal/repository"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const depositRequestTTL = 24 * time.Hour

// ProofStore persists a payment screenshot and returns the reference kept on the deposit.
type ProofStore interface {
	Save(ctx context.Context, userID int64, payload string) (string, error)
}

type CreateDepositInput struct {
	UserID        int64
	Amount        decimal.Decimal
	AmountINR     *int64
	PaymentMethod models.PaymentMethod
	Currency      *string
	Screenshot    string
	// RequestID deduplicates client retries for 24h when set.
	RequestID string
}

type DepositService interface {
	CreateDepositRequest(ctx context.Context, in CreateDepositInput) (*models.Deposit, error)
	ApproveDeposit(ctx context.Context, depositID string) (*models.Deposit, error)
	RejectDeposit(ctx context.Context, depositID string) (*models.Deposit, error)
	GetDeposit(ctx context.Context, depositID string) (*models.Deposit, error)
	GetUserDeposits(ctx context.Context, userID int64) ([]models.Deposit, error)
	GetPendingDeposits(ctx context.Context) ([]models.Deposit, error)
}

type depositService struct {
	deposits     repository.DepositRepository
	transactions repository.TransactionRepository
	wallets      WalletService
	converter    CurrencyConverter
	proofs       ProofStore
	redisClient  redis.RedisClient
	tx           repository.Transactor
	events       *EventPublisher
}

func NewDepositService(
	deposits repository.DepositRepository,
	transactions repository.TransactionRepository,
	wallets WalletService,
	converter CurrencyConverter,
	proofs ProofStore,
	redisClient redis.RedisClient,
	tx repository.Transactor,
	events *EventPublisher,
) *depositService {
	return &depositService{
		deposits:     deposits,
		transactions: transactions,
		wallets:      wallets,
		converter:    converter,
		proofs:       proofs,
		redisClient:  redisClient,
		tx:           tx,
		events:       events,
	}
}

func (s *depositService) CreateDepositRequest(ctx context.Context, in CreateDepositInput) (*models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "CreateDepositRequest")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user_id", in.UserID),
		attribute.String("payment_method", string(in.PaymentMethod)),
	)

	if in.Amount.LessThan(models.MinDepositAmount) {
		span.SetStatus(codes.Error, "amount below minimum")
		return nil, fmt.Errorf("%w: minimum deposit amount is $%s", pkgerrors.ErrInvalidAmount, models.MinDepositAmount.StringFixed(0))
	}
	if in.Amount.GreaterThan(models.MaxAmount) {
		span.SetStatus(codes.Error, "amount above maximum")
		return nil, fmt.Errorf("%w: maximum deposit amount is $%s", pkgerrors.ErrInvalidAmount, models.MaxAmount.StringFixed(2))
	}
	if !in.PaymentMethod.Valid() {
		span.SetStatus(codes.Error, "invalid payment method")
		return nil, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidPaymentMethod, in.PaymentMethod)
	}
	if strings.TrimSpace(in.Screenshot) == "" {
		span.SetStatus(codes.Error, "missing proof")
		return nil, pkgerrors.ErrMissingProof
	}

	if in.RequestID != "" {
		requestKey := fmt.Sprintf("deposit-request:%s", in.RequestID)
		ok, err := s.redisClient.SetNX(ctx, requestKey, in.UserID, depositRequestTTL)
		if err != nil {
			slog.Error("failed to register deposit request", "request_id", in.RequestID, "error", err)
			return nil, failSpan(span, err, "request guard failed")
		}
		if !ok {
			slog.Warn("duplicate deposit request", "request_id", in.RequestID, "user_id", in.UserID)
			span.SetStatus(codes.Error, "request already processed")
			return nil, pkgerrors.ErrRequestAlreadyProcessed
		}
	}

	deposit, err := s.buildDeposit(ctx, in)
	if err == nil {
		err = s.deposits.Create(ctx, deposit)
	}
	if err != nil {
		if in.RequestID != "" {
			// разрешаем повтор запроса после неудачи
			if delErr := s.redisClient.Del(ctx, fmt.Sprintf("deposit-request:%s", in.RequestID)); delErr != nil {
				slog.Error("failed to release deposit request", "request_id", in.RequestID, "error", delErr)
			}
		}
		observability.DepositsTotal.WithLabelValues("failed").Inc()
		slog.Error("failed to create deposit request", "user_id", in.UserID, "error", err)
		return nil, failSpan(span, err, "create deposit failed")
	}

	observability.DepositsTotal.WithLabelValues("created").Inc()
	slog.Info("deposit request created",
		"deposit_id", deposit.ID,
		"user_id", deposit.UserID,
		"amount", deposit.Amount.String(),
		"payment_method", deposit.PaymentMethod)

	s.events.Publish(ctx, models.WalletEvent{
		EventType:   models.EventDepositCreated,
		UserID:      deposit.UserID,
		ReferenceID: deposit.ID,
		Amount:      deposit.Amount,
	})
	return deposit, nil
}

func (s *depositService) buildDeposit(ctx context.Context, in CreateDepositInput) (*models.Deposit, error) {
	d := &models.Deposit{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Amount:        in.Amount.Round(2),
		PaymentMethod: in.PaymentMethod,
		Status:        models.DepositPending,
	}

	switch in.PaymentMethod {
	case models.PaymentMethodQR:
		d.AmountINR = in.AmountINR
		if d.AmountINR == nil {
			inr, err := s.converter.Convert(ctx, d.Amount)
			if err != nil {
				return nil, err
			}
			d.AmountINR = &inr
		}
	case models.PaymentMethodCrypto:
		currency := models.DefaultCryptoCurrency
		if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
			currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
		}
		d.Currency = &currency
	}

	ref, err := s.proofs.Save(ctx, in.UserID, in.Screenshot)
	if err != nil {
		return nil, err
	}
	d.Screenshot = ref
	return d, nil
}

// ApproveDeposit credits the wallet exactly once: the pending→completed
// compare-and-set, the balance change and the ledger entry share one
// transaction, and only one caller can win the compare-and-set.
func (s *depositService) ApproveDeposit(ctx context.Context, depositID string) (*models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "ApproveDeposit")
	defer span.End()
	span.SetAttributes(attribute.String("deposit_id", depositID))

	var (
		deposit *models.Deposit
		balance decimal.Decimal
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		d, err := s.deposits.Finalize(ctx, depositID, models.DepositCompleted)
		if err != nil {
			return err
		}

		balance, err = s.wallets.AdjustBalance(ctx, d.UserID, d.Amount)
		if err != nil {
			return err
		}

		ref := d.ID
		if _, err := s.transactions.Create(ctx, &models.Transaction{
			UserID:      d.UserID,
			Type:        models.TypeDeposit,
			Amount:      d.Amount,
			Description: fmt.Sprintf("Deposit of $%s via %s", d.Amount.StringFixed(2), d.PaymentMethod.Label()),
			ReferenceID: &ref,
		}); err != nil {
			return err
		}

		deposit = d
		s.tx.AfterCommit(ctx, func() {
			s.events.Publish(ctx, models.WalletEvent{
				EventType:   models.EventDepositApproved,
				UserID:      d.UserID,
				ReferenceID: d.ID,
				Amount:      d.Amount,
				Balance:     &balance,
			})
		})
		return nil
	})
	if err != nil {
		slog.Error("failed to approve deposit", "deposit_id", depositID, "error", err)
		return nil, failSpan(span, err, "approve deposit failed")
	}

	observability.DepositsTotal.WithLabelValues("completed").Inc()
	slog.Info("deposit approved",
		"deposit_id", deposit.ID,
		"user_id", deposit.UserID,
		"amount", deposit.Amount.String(),
		"balance", balance.String())
	return deposit, nil
}

func (s *depositService) RejectDeposit(ctx context.Context, depositID string) (*models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "RejectDeposit")
	defer span.End()
	span.SetAttributes(attribute.String("deposit_id", depositID))

	deposit, err := s.deposits.Finalize(ctx, depositID, models.DepositRejected)
	if err != nil {
		slog.Error("failed to reject deposit", "deposit_id", depositID, "error", err)
		return nil, failSpan(span, err, "reject deposit failed")
	}

	observability.DepositsTotal.WithLabelValues("rejected").Inc()
	slog.Info("deposit rejected", "deposit_id", deposit.ID, "user_id", deposit.UserID)

	s.events.Publish(ctx, models.WalletEvent{
		EventType:   models.EventDepositRejected,
		UserID:      deposit.UserID,
		ReferenceID: deposit.ID,
		Amount:      deposit.Amount,
	})
	return deposit, nil
}

func (s *depositService) GetDeposit(ctx context.Context, depositID string) (*models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "GetDeposit")
	defer span.End()

	deposit, err := s.deposits.GetByID(ctx, depositID)
	if err != nil {
		return nil, failSpan(span, err, "get deposit failed")
	}
	return deposit, nil
}

func (s *depositService) GetUserDeposits(ctx context.Context, userID int64) ([]models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "GetUserDeposits")
	defer span.End()

	deposits, err := s.deposits.ListByUser(ctx, userID)
	if err != nil {
		return nil, failSpan(span, err, "list user deposits failed")
	}
	return deposits, nil
}

func (s *depositService) GetPendingDeposits(ctx context.Context) ([]models.Deposit, error) {
	ctx, span := otel.Tracer("deposit-service").Start(ctx, "GetPendingDeposits")
	defer span.End()

	deposits, err := s.deposits.ListByStatus(ctx, models.DepositPending)
	if err != nil {
		return nil, failSpan(span, err, "list pending deposits failed")
	}
	return deposits, nil
}
