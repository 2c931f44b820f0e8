package handler

import (
	"net/http"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	token, err := h.auth.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.auth.AdminLogout(r.Context(), adminID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
