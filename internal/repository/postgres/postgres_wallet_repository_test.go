package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/boost-wallet/internal/repository/postgres"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresWalletRepository_GetOrCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresWalletRepository(db)
	ctx := context.Background()

	insert := regexp.QuoteMeta(`INSERT INTO wallets (user_id, balance) VALUES ($1, 0) ON CONFLICT (user_id) DO NOTHING`)
	selectWallet := regexp.QuoteMeta(`SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`)

	t.Run("CreatesZeroWallet", func(t *testing.T) {
		mock.ExpectExec(insert).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(selectWallet).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "balance", "updated_at"}).AddRow(int64(7), "0", time.Now()))

		w, err := repo.GetOrCreate(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), w.UserID)
		assert.True(t, w.Balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReturnsExistingWallet", func(t *testing.T) {
		mock.ExpectExec(insert).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(selectWallet).WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "balance", "updated_at"}).AddRow(int64(7), "12.50", time.Now()))

		w, err := repo.GetOrCreate(ctx, 7)
		require.NoError(t, err)
		assert.True(t, w.Balance.Equal(decimal.RequireFromString("12.5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mock.ExpectExec(insert).WithArgs(int64(404)).WillReturnError(&pq.Error{Code: "23503"})

		w, err := repo.GetOrCreate(ctx, 404)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, pkgerrors.ErrUserNotFound)
		assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StoreDown", func(t *testing.T) {
		mock.ExpectExec(insert).WithArgs(int64(7)).WillReturnError(sql.ErrConnDone)

		_, err := repo.GetOrCreate(ctx, 7)
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWalletRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresWalletRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, balance, updated_at FROM wallets`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "balance", "updated_at"}))

	w, err := repo.Get(context.Background(), 3)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, pkgerrors.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWalletRepository_ChangeBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresWalletRepository(db)
	ctx := context.Background()

	update := regexp.QuoteMeta(`UPDATE wallets SET balance = balance + $1, updated_at = now() WHERE user_id = $2 AND (balance + $1) >= 0 RETURNING balance`)
	exists := regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1)`)

	t.Run("Credit", func(t *testing.T) {
		delta := decimal.RequireFromString("10.50")
		mock.ExpectQuery(update).WithArgs(delta, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("25.50"))

		balance, err := repo.ChangeBalance(ctx, 1, delta)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("25.5")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RefusesNegativeBalance", func(t *testing.T) {
		delta := decimal.RequireFromString("-30")
		mock.ExpectQuery(update).WithArgs(delta, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		mock.ExpectQuery(exists).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		balance, err := repo.ChangeBalance(ctx, 1, delta)
		assert.True(t, balance.IsZero())
		assert.ErrorIs(t, err, pkgerrors.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingWallet", func(t *testing.T) {
		delta := decimal.NewFromInt(5)
		mock.ExpectQuery(update).WithArgs(delta, int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		mock.ExpectQuery(exists).WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.ChangeBalance(ctx, 9, delta)
		assert.ErrorIs(t, err, pkgerrors.ErrWalletNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTransactor_WithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	transactor := postgres.NewPostgresTransactor(db)
	wallets := postgres.NewPostgresWalletRepository(db)
	ctx := context.Background()

	update := regexp.QuoteMeta(`UPDATE wallets`)

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(update).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("5"))
		mock.ExpectCommit()

		err := transactor.WithinTx(ctx, func(ctx context.Context) error {
			_, err := wallets.ChangeBalance(ctx, 1, decimal.NewFromInt(5))
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(update).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := transactor.WithinTx(ctx, func(ctx context.Context) error {
			_, err := wallets.ChangeBalance(ctx, 1, decimal.NewFromInt(5))
			return err
		})
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NestedCallsShareTransaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(update).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("5"))
		mock.ExpectQuery(update).WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("10"))
		mock.ExpectCommit()

		err := transactor.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := wallets.ChangeBalance(ctx, 1, decimal.NewFromInt(5)); err != nil {
				return err
			}
			return transactor.WithinTx(ctx, func(ctx context.Context) error {
				_, err := wallets.ChangeBalance(ctx, 1, decimal.NewFromInt(5))
				return err
			})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AfterCommitRunsOnlyOnCommit", func(t *testing.T) {
		var fired []string

		mock.ExpectBegin()
		mock.ExpectCommit()
		err := transactor.WithinTx(ctx, func(ctx context.Context) error {
			transactor.AfterCommit(ctx, func() { fired = append(fired, "committed") })
			assert.Empty(t, fired)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"committed"}, fired)

		mock.ExpectBegin()
		mock.ExpectRollback()
		err = transactor.WithinTx(ctx, func(ctx context.Context) error {
			transactor.AfterCommit(ctx, func() { fired = append(fired, "rolled back") })
			return pkgerrors.ErrInsufficientBalance
		})
		assert.ErrorIs(t, err, pkgerrors.ErrInsufficientBalance)
		assert.Equal(t, []string{"committed"}, fired)

		transactor.AfterCommit(ctx, func() { fired = append(fired, "no tx") })
		assert.Equal(t, []string{"committed", "no tx"}, fired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CommitFailure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

		err := transactor.WithinTx(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
