// Command ledger-audit consumes wallet events and checks each touched wallet
// against the sum of its transactions.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/boost-wallet/internal/config"
	"github.com/honeynil/boost-wallet/internal/infrastructure/kafka"
	"github.com/honeynil/boost-wallet/internal/observability"
	core "github.com/honeynil/boost-wallet/internal/repository/postgres"
	service "github.com/honeynil/boost-wallet/internal/services"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	metricsAddr := cfg.AuditMetrics

	shutdownTracing := observability.Setup(ctx, "ledger-audit", cfg.Env, cfg.OTLPEndpoint)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reconciler := service.NewReconciliationService(
		core.NewPostgresWalletRepository(db),
		core.NewPostgresTransactionRepository(db),
		core.NewPostgresTransactor(db),
	)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.EventsTopic, cfg.AuditGroupID, reconciler)
	defer consumer.Close()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	slog.Info("ledger audit started", "topic", cfg.EventsTopic, "group", cfg.AuditGroupID)
	if err := consumer.Consume(ctx); err != nil {
		slog.Error("consumer stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
	slog.Info("ledger audit stopped")
}
