package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	wallet, err := h.wallets.GetOrCreateWallet(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	history, err := h.wallets.GetTransactionHistory(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// ConvertUsdInr serves the rupee price shown on the QR payment screen.
func (h *Handler) ConvertUsdInr(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		raw = "1"
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, stderrors.New("amount must be a number"))
		return
	}

	rate, err := h.converter.Rate(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	inr, err := h.converter.Convert(r.Context(), amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"amount_usd": amount,
		"amount_inr": inr,
		"rate":       rate,
	})
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, stderrors.New(key + " must be an integer")
	}
	return v, nil
}
