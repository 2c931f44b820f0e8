package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/honeynil/boost-wallet/internal/models"
	service "github.com/honeynil/boost-wallet/internal/services"
	pkgerrors "github.com/honeynil/boost-wallet/pkg/errors"
	"github.com/shopspring/decimal"
)

type placeOrderRequest struct {
	Platform      string          `json:"platform"`
	Service       string          `json:"service"`
	Link          *string         `json:"link"`
	Quantity      int32           `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PayFromWallet bool            `json:"pay_from_wallet"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.placeOrder(w, r, &userID)
}

// PlaceGuestOrder takes orders without an account; they cannot be paid from a wallet.
func (h *Handler) PlaceGuestOrder(w http.ResponseWriter, r *http.Request) {
	h.placeOrder(w, r, nil)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request, userID *int64) {
	var req placeOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderInput{
		UserID:        userID,
		Platform:      req.Platform,
		Service:       req.Service,
		Link:          req.Link,
		Quantity:      req.Quantity,
		Total:         req.Total,
		Name:          req.Name,
		Email:         req.Email,
		PayFromWallet: req.PayFromWallet,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	// чужой заказ отдаём как несуществующий
	if order.UserID == nil || *order.UserID != userID {
		h.writeServiceError(w, r, pkgerrors.ErrOrderNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// GetGuestOrder shows a guest order to whoever knows both its id and contact email.
func (h *Handler) GetGuestOrder(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.writeError(w, http.StatusBadRequest, stderrors.New("email is required"))
		return
	}

	order, err := h.orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if order.UserID != nil || !strings.EqualFold(order.Email, email) {
		h.writeServiceError(w, r, pkgerrors.ErrOrderNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

// ListOrders is the admin order list, optionally narrowed by ?email=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.Order
		err    error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		orders, err = h.orders.GetOrdersByEmail(r.Context(), email)
	} else {
		orders, err = h.orders.GetAllOrders(r.Context())
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) AdminGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, stderrors.Join(pkgerrors.ErrInvalidOrderStatus, err))
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}
