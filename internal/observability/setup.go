package observability

import (
	"context"
	"log/slog"

	"github.com/honeynil/boost-wallet/internal/infrastructure/observability"
)

// Setup initialises logs, metrics and traces and returns the tracer shutdown.
func Setup(ctx context.Context, serviceName, env, otlpEndpoint string) func(context.Context) error {
	observability.InitLogger(env)
	observability.InitMetrics()
	shutdown, err := observability.InitTracing(ctx, serviceName, otlpEndpoint)
	if err != nil {
		slog.Error("tracing disabled", "service", serviceName, "error", err)
		return func(context.Context) error { return nil }
	}
	return shutdown
}
