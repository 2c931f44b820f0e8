package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/honeynil/boost-wallet/internal/infrastructure/auth"
	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	"github.com/honeynil/boost-wallet/internal/repository"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 12 * time.Hour

type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (string, error)
	AdminLogout(ctx context.Context, adminID int64) error
}

type authService struct {
	admins      repository.AdminRepository
	redisClient redis.RedisClient
	jwtSecret   string
}

func NewAuthService(admins repository.AdminRepository, redisClient redis.RedisClient, jwtSecret string) *authService {
	return &authService{
		admins:      admins,
		redisClient: redisClient,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "AdminLogin")
	defer span.End()

	if username == "" || password == "" {
		span.SetStatus(codes.Error, "empty credentials")
		return "", pkgerrors.ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrAdminNotFound) {
			slog.Warn("admin login for unknown user", "username", username)
			span.SetStatus(codes.Error, "invalid credentials")
			return "", pkgerrors.ErrInvalidCredentials
		}
		return "", failSpan(span, err, "admin lookup failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		slog.Warn("admin password mismatch", "username", username)
		span.SetStatus(codes.Error, "invalid credentials")
		return "", pkgerrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, admin.ID, auth.RoleAdmin, adminTokenTTL)
	if err != nil {
		return "", failSpan(span, fmt.Errorf("failed to sign token: %w", err), "token signing failed")
	}
	if err := s.redisClient.Set(ctx, auth.AdminTokenKey(admin.ID), token, adminTokenTTL); err != nil {
		slog.Error("failed to store admin token", "admin_id", admin.ID, "error", err)
		return "", failSpan(span, err, "token store failed")
	}

	slog.Info("admin logged in", "admin_id", admin.ID, "username", username)
	return token, nil
}

func (s *authService) AdminLogout(ctx context.Context, adminID int64) error {
	ctx, span := otel.Tracer("auth-service").Start(ctx, "AdminLogout")
	defer span.End()

	if err := s.redisClient.Del(ctx, auth.AdminTokenKey(adminID)); err != nil {
		slog.Error("failed to revoke admin token", "admin_id", adminID, "error", err)
		return failSpan(span, err, "token revoke failed")
	}
	slog.Info("admin logged out", "admin_id", adminID)
	return nil
}
