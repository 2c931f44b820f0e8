package handler

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/boost-wallet/internal/infrastructure/auth"
	service "github.com/honeynil/boost-wallet/internal/services"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
)

type Handler struct {
	wallets   service.WalletService
	deposits  service.DepositService
	orders    service.OrderService
	auth      service.AuthService
	converter service.CurrencyConverter
}

func NewHandler(
	wallets service.WalletService,
	deposits service.DepositService,
	orders service.OrderService,
	authService service.AuthService,
	converter service.CurrencyConverter,
) *Handler {
	return &Handler{
		wallets:   wallets,
		deposits:  deposits,
		orders:    orders,
		auth:      authService,
		converter: converter,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/admin/login", h.AdminLogin).Methods(http.MethodPost)
	r.HandleFunc("/rates/usd-inr", h.ConvertUsdInr).Methods(http.MethodGet)
	r.HandleFunc("/guest/orders", h.PlaceGuestOrder).Methods(http.MethodPost)
	r.HandleFunc("/guest/orders/{id}", h.GetGuestOrder).Methods(http.MethodGet)
}

func (h *Handler) RegisterUserRoutes(r *mux.Router) {
	r.HandleFunc("/wallet", h.GetWallet).Methods(http.MethodGet)
	r.HandleFunc("/wallet/transactions", h.GetTransactionHistory).Methods(http.MethodGet)
	r.HandleFunc("/deposits", h.CreateDeposit).Methods(http.MethodPost)
	r.HandleFunc("/deposits", h.GetUserDeposits).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.GetUserOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
}

func (h *Handler) RegisterAdminRoutes(r *mux.Router) {
	r.HandleFunc("/deposits/pending", h.GetPendingDeposits).Methods(http.MethodGet)
	r.HandleFunc("/deposits/{id}", h.GetDeposit).Methods(http.MethodGet)
	r.HandleFunc("/deposits/{id}/approve", h.ApproveDeposit).Methods(http.MethodPost)
	r.HandleFunc("/deposits/{id}/reject", h.RejectDeposit).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.AdminGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPatch)
	r.HandleFunc("/logout", h.AdminLogout).Methods(http.MethodPost)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeServiceError maps domain errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, pkgerrors.ErrInvalidAmount),
		stderrors.Is(err, pkgerrors.ErrInvalidPaymentMethod),
		stderrors.Is(err, pkgerrors.ErrMissingProof),
		stderrors.Is(err, pkgerrors.ErrInsufficientBalance),
		stderrors.Is(err, pkgerrors.ErrInvalidOrder),
		stderrors.Is(err, pkgerrors.ErrInvalidOrderStatus):
		h.writeError(w, http.StatusBadRequest, err)
	case stderrors.Is(err, pkgerrors.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, err)
	case stderrors.Is(err, pkgerrors.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case stderrors.Is(err, pkgerrors.ErrAlreadyFinalized),
		stderrors.Is(err, pkgerrors.ErrRequestAlreadyProcessed):
		h.writeError(w, http.StatusConflict, err)
	case stderrors.Is(err, pkgerrors.ErrStoreUnavailable),
		stderrors.Is(err, pkgerrors.ErrRateUnavailable):
		slog.Error("dependency unavailable", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, stderrors.New("service temporarily unavailable, please retry"))
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, stderrors.New("internal server error"))
	}
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, stderrors.New("user not authenticated"))
	}
	return userID, ok
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, stderrors.New("invalid request body"))
		return false
	}
	return true
}
