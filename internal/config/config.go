package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Env            string
	HTTPAddr       string
	PostgresDSN    string
	MigrateOnStart bool
	RedisAddr      string
	KafkaBrokers   []string
	EventsTopic    string
	AuditGroupID   string
	AuditMetrics   string
	JWTSecret      string
	OTLPEndpoint   string

	UsdInrRate    decimal.Decimal
	RateSourceURL string
	RateCacheTTL  time.Duration

	// ProofStorage is "inline" or "cloudinary".
	ProofStorage        string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "dev"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		PostgresDSN:         getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=boost sslmode=disable"),
		MigrateOnStart:      getBool("MIGRATE_ON_START", true),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:        splitList(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:         getEnv("KAFKA_EVENTS_TOPIC", "wallet-events"),
		AuditGroupID:        getEnv("KAFKA_AUDIT_GROUP", "ledger-audit"),
		AuditMetrics:        getEnv("AUDIT_METRICS_ADDR", ":9102"),
		JWTSecret:           getEnv("JWT_SECRET", "supersecret"),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		RateSourceURL:       os.Getenv("USD_INR_RATE_URL"),
		RateCacheTTL:        getDuration("USD_INR_RATE_TTL", 15*time.Minute),
		ProofStorage:        getEnv("PROOF_STORAGE", "inline"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "payment-proofs"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}

	cfg.UsdInrRate = decimal.RequireFromString("83.5")
	if raw := os.Getenv("USD_INR_RATE"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || !rate.IsPositive() {
			slog.Warn("invalid USD_INR_RATE, using default", "value", raw, "error", err)
		} else {
			cfg.UsdInrRate = rate
		}
	}

	slog.Info("config loaded",
		"env", cfg.Env,
		"http_addr", cfg.HTTPAddr,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"events_topic", cfg.EventsTopic,
		"usd_inr_rate", cfg.UsdInrRate.String(),
		"proof_storage", cfg.ProofStorage)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
