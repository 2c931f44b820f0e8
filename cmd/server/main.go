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

	"github.com/honeynil/boost-wallet/internal/api"
	"github.com/honeynil/boost-wallet/internal/config"
	"github.com/honeynil/boost-wallet/internal/handler"
	"github.com/honeynil/boost-wallet/internal/infrastructure/kafka"
	"github.com/honeynil/boost-wallet/internal/infrastructure/proof"
	"github.com/honeynil/boost-wallet/internal/infrastructure/rates"
	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	"github.com/honeynil/boost-wallet/internal/observability"
	core "github.com/honeynil/boost-wallet/internal/repository/postgres"
	service "github.com/honeynil/boost-wallet/internal/services"
	_ "github.com/lib/pq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Инициализируем логи, метрики, трейсы
	shutdownTracing := observability.Setup(ctx, "boost-wallet", cfg.Env, cfg.OTLPEndpoint)
	defer shutdownTracing(context.Background())

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to open postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	if cfg.MigrateOnStart {
		if err := core.RunMigrations(ctx, db); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()
	events := service.NewEventPublisher(producer, cfg.EventsTopic)

	// Репозитории
	walletRepo := core.NewPostgresWalletRepository(db)
	depositRepo := core.NewPostgresDepositRepository(db)
	transactionRepo := core.NewPostgresTransactionRepository(db)
	orderRepo := core.NewPostgresOrderRepository(db)
	adminRepo := core.NewPostgresAdminRepository(db)
	transactor := core.NewPostgresTransactor(db)

	var rateSource rates.Source = rates.NewFixedRateSource(cfg.UsdInrRate)
	if cfg.RateSourceURL != "" {
		rateSource = rates.NewCachedRateSource(rates.NewHTTPRateSource(cfg.RateSourceURL), redisClient, cfg.RateCacheTTL)
	}

	var proofs service.ProofStore = proof.NewInlineStore()
	if cfg.ProofStorage == "cloudinary" {
		cloudinaryStore, err := proof.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			slog.Error("failed to init cloudinary", "error", err)
			os.Exit(1)
		}
		proofs = cloudinaryStore
	}

	// Сервисы
	walletSvc := service.NewWalletService(walletRepo, transactionRepo)
	converter := service.NewCurrencyConverter(rateSource)
	depositSvc := service.NewDepositService(depositRepo, transactionRepo, walletSvc, converter, proofs, redisClient, transactor, events)
	settlementSvc := service.NewSettlementService(walletSvc, transactionRepo, transactor, events)
	orderSvc := service.NewOrderService(orderRepo, settlementSvc, transactor)
	authSvc := service.NewAuthService(adminRepo, redisClient, cfg.JWTSecret)

	h := handler.NewHandler(walletSvc, depositSvc, orderSvc, authSvc, converter)
	router := api.SetupRouter(h, redisClient, cfg.JWTSecret)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
