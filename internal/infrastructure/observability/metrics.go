package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Счётчик вызовов методов репозитория
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	// Гистограмма времени выполнения запросов
	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Исходы заявок на пополнение: created|completed|rejected|failed
	DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_deposits_total",
			Help: "Deposit requests by outcome",
		},
		[]string{"outcome"},
	)

	SettlementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_settlements_total",
			Help: "Wallet purchase settlements by outcome",
		},
		[]string{"outcome"},
	)

	LedgerDriftTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_ledger_drift_total",
			Help: "Reconciliations where the balance differs from the transaction sum",
		},
	)
)

var registerOnce sync.Once

func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RepositoryCalls,
			RepositoryDuration,
			RequestCounter,
			RequestDuration,
			DepositsTotal,
			SettlementsTotal,
			LedgerDriftTotal,
		)
	})
}
