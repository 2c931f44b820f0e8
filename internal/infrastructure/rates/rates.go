package rates

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultUsdInr is the advisory USD→INR rate used when no live source is configured.
var DefaultUsdInr = decimal.RequireFromString("83.5")

const cacheKey = "fx:USD:INR"

type FixedRateSource struct {
	rate decimal.Decimal
}

func NewFixedRateSource(rate decimal.Decimal) *FixedRateSource {
	if !rate.IsPositive() {
		rate = DefaultUsdInr
	}
	return &FixedRateSource{rate: rate}
}

func (s *FixedRateSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	return s.rate, nil
}

// HTTPRateSource reads a JSON document of the form {"rates": {"INR": 83.12}}.
type HTTPRateSource struct {
	url    string
	client *http.Client
}

func NewHTTPRateSource(url string) *HTTPRateSource {
	return &HTTPRateSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (s *HTTPRateSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", pkgerrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: rate source returned %d %s", pkgerrors.ErrRateUnavailable, resp.StatusCode, string(body))
	}
	var out ratesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", pkgerrors.ErrRateUnavailable, err)
	}
	rate, ok := out.Rates["INR"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: INR rate missing", pkgerrors.ErrRateUnavailable)
	}
	return rate, nil
}

type Source interface {
	Rate(ctx context.Context) (decimal.Decimal, error)
}

// CachedRateSource keeps the last fetched rate in Redis for ttl.
// Redis failures degrade to a direct fetch.
type CachedRateSource struct {
	next  Source
	cache redis.RedisClient
	ttl   time.Duration
}

func NewCachedRateSource(next Source, cache redis.RedisClient, ttl time.Duration) *CachedRateSource {
	return &CachedRateSource{next: next, cache: cache, ttl: ttl}
}

func (s *CachedRateSource) Rate(ctx context.Context) (decimal.Decimal, error) {
	cached, err := s.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		if rate, perr := decimal.NewFromString(cached); perr == nil && rate.IsPositive() {
			return rate, nil
		}
		slog.Warn("corrupt cached rate", "key", cacheKey, "value", cached)
	case !stderrors.Is(err, redis.ErrKeyNotFound):
		slog.Error("failed to read cached rate", "key", cacheKey, "error", err)
	}

	rate, err := s.next.Rate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.cache.Set(ctx, cacheKey, rate.String(), s.ttl); err != nil {
		slog.Error("failed to cache rate", "key", cacheKey, "error", err)
	}
	return rate, nil
}
