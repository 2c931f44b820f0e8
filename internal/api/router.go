package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/honeynil/boost-wallet/internal/handler"
	"github.com/honeynil/boost-wallet/internal/infrastructure/auth"
	"github.com/honeynil/boost-wallet/internal/infrastructure/observability"
	"github.com/honeynil/boost-wallet/internal/infrastructure/redis"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(h *handler.Handler, redisClient redis.RedisClient, jwtSecret string) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	h.RegisterPublicRoutes(r)

	authMiddleware := auth.AuthMiddleware(jwtSecret)

	// Админские роуты: JWT с ролью admin + токен в Redis
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware, auth.RequireAdmin(redisClient))
	h.RegisterAdminRoutes(admin)

	user := r.NewRoute().Subrouter()
	user.Use(authMiddleware, auth.RequireRole(auth.RoleUser))
	h.RegisterUserRoutes(user)

	return r
}

// metricsMiddleware labels by route template so ids do not blow up cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)
		if recorder.status == 0 {
			recorder.status = http.StatusOK
		}

		observability.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(recorder.status)).Inc()
		observability.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder для захвата статуса ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
