package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/boost-wallet/internal/models"
	service "github.com/honeynil/boost-wallet/internal/services"
	"github.com/shopspring/decimal"
)

type createDepositRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	AmountINR     *int64          `json:"amount_inr"`
	PaymentMethod string          `json:"payment_method"`
	Currency      *string         `json:"currency"`
	Screenshot    string          `json:"screenshot"`
	RequestID     string          `json:"request_id"`
}

func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createDepositRequest
	if !h.decode(w, r, &req) {
		return
	}

	deposit, err := h.deposits.CreateDepositRequest(r.Context(), service.CreateDepositInput{
		UserID:        userID,
		Amount:        req.Amount,
		AmountINR:     req.AmountINR,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Currency:      req.Currency,
		Screenshot:    req.Screenshot,
		RequestID:     req.RequestID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, deposit)
}

func (h *Handler) GetUserDeposits(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	deposits, err := h.deposits.GetUserDeposits(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, models.WithoutInlineProofs(deposits))
}

func (h *Handler) GetPendingDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.deposits.GetPendingDeposits(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, models.WithoutInlineProofs(deposits))
}

// GetDeposit returns one deposit with its payment proof for review.
func (h *Handler) GetDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.deposits.GetDeposit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deposit)
}

func (h *Handler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.deposits.ApproveDeposit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deposit)
}

func (h *Handler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.deposits.RejectDeposit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deposit)
}
