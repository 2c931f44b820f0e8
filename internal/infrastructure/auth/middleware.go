package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
	tokenKey
)

// AdminTokenKey is where the active admin token is stored; logout deletes it.
func AdminTokenKey(adminID int64) string {
	return fmt.Sprintf("admin:%d:token", adminID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithIdentity returns ctx carrying the caller identity, as AuthMiddleware does.
func WithIdentity(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "authorization header missing")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := ParseToken(jwtSecret, parts[1])
			if err != nil {
				slog.Warn("rejected bearer token", "path", r.URL.Path, "error", err)
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Role)
			ctx = context.WithValue(ctx, tokenKey, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after AuthMiddleware. Admin ids live in a different
// table from user ids, so user routes must not accept admin tokens.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				writeAuthError(w, http.StatusForbidden, role+" role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after AuthMiddleware. Admin tokens are valid only
// while Redis still holds them.
func RequireAdmin(redisClient redis.RedisClient) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			adminID, ok := UserIDFromContext(ctx)
			if !ok || RoleFromContext(ctx) != RoleAdmin {
				writeAuthError(w, http.StatusForbidden, "admin role required")
				return
			}

			storedToken, err := redisClient.Get(ctx, AdminTokenKey(adminID))
			if err != nil || storedToken != TokenFromContext(ctx) {
				slog.Error("invalid or revoked token", "admin_id", adminID, "error", err)
				writeAuthError(w, http.StatusUnauthorized, "invalid or revoked token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
