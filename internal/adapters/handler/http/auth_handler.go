package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

type AuthHandler struct {
	sessions               ports.SessionService
	defaultDurationMinutes int
}

func NewAuthHandler(sessions ports.SessionService, defaultDurationMinutes int) *AuthHandler {
	if defaultDurationMinutes <= 0 {
		defaultDurationMinutes = 5
	}
	return &AuthHandler{sessions: sessions, defaultDurationMinutes: defaultDurationMinutes}
}

type loginRequest struct {
	UserID          string `json:"user_id"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = h.defaultDurationMinutes
	}

	if err := h.sessions.Login(r.Context(), req.UserID, req.DurationMinutes); err != nil {
		writeError(w, err)
		return
	}

	h.Session(w, r)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session()
	response := struct {
		UserID           string  `json:"user_id,omitempty"`
		Status           string  `json:"status"`
		RemainingSeconds float64 `json:"remaining_seconds"`
	}{
		UserID:           session.UserID,
		Status:           string(session.Status),
		RemainingSeconds: h.sessions.Remaining(time.Now()).Seconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
