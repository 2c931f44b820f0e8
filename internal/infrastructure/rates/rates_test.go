package rates_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/honeynil/boost-wallet/internal/infrastructure/rates"
	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	redismocks "github.com/honeynil/boost-wallet/internal/infrastructure/redis/mocks"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRateSource(t *testing.T) {
	rate, err := rates.NewFixedRateSource(decimal.Zero).Rate(context.Background())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("83.5")))

	rate, err = rates.NewFixedRateSource(decimal.NewFromInt(80)).Rate(context.Background())
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(80)))
}

func TestHTTPRateSource(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.92,"INR":83.12}}`))
		}))
		defer srv.Close()

		rate, err := rates.NewHTTPRateSource(srv.URL).Rate(context.Background())
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("83.12")))
	})

	t.Run("MissingINR", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
		}))
		defer srv.Close()

		_, err := rates.NewHTTPRateSource(srv.URL).Rate(context.Background())
		assert.ErrorIs(t, err, pkgerrors.ErrRateUnavailable)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := rates.NewHTTPRateSource(srv.URL).Rate(context.Background())
		assert.ErrorIs(t, err, pkgerrors.ErrRateUnavailable)
	})
}

func TestCachedRateSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	ttl := 10 * time.Minute

	t.Run("Hit", func(t *testing.T) {
		cache := redismocks.NewMockRedisClient(ctrl)
		cache.EXPECT().Get(gomock.Any(), "fx:USD:INR").Return("84.25", nil)

		src := rates.NewCachedRateSource(rates.NewFixedRateSource(decimal.NewFromInt(1)), cache, ttl)
		rate, err := src.Rate(ctx)
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("84.25")))
	})

	t.Run("MissFillsCache", func(t *testing.T) {
		cache := redismocks.NewMockRedisClient(ctrl)
		cache.EXPECT().Get(gomock.Any(), "fx:USD:INR").Return("", redis.ErrKeyNotFound)
		cache.EXPECT().Set(gomock.Any(), "fx:USD:INR", "83.5", ttl).Return(nil)

		src := rates.NewCachedRateSource(rates.NewFixedRateSource(rates.DefaultUsdInr), cache, ttl)
		rate, err := src.Rate(ctx)
		require.NoError(t, err)
		assert.True(t, rate.Equal(rates.DefaultUsdInr))
	})

	t.Run("RedisDownFallsThrough", func(t *testing.T) {
		cache := redismocks.NewMockRedisClient(ctrl)
		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		src := rates.NewCachedRateSource(rates.NewFixedRateSource(rates.DefaultUsdInr), cache, ttl)
		rate, err := src.Rate(ctx)
		require.NoError(t, err)
		assert.True(t, rate.Equal(rates.DefaultUsdInr))
	})
}
