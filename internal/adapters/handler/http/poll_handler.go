package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
	"github.com/vncsmyrnk/pollview/internal/core/ports"
)

type PollHandler struct {
	polls       ports.PollService
	state       ports.StateService
	sessions    ports.SessionReader
	leaderboard ports.LeaderboardService
}

func NewPollHandler(polls ports.PollService, state ports.StateService, sessions ports.SessionReader, leaderboard ports.LeaderboardService) *PollHandler {
	return &PollHandler{
		polls:       polls,
		state:       state,
		sessions:    sessions,
		leaderboard: leaderboard,
	}
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	view, err := h.polls.Polls(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type createPollRequest struct {
	OptionOne string `json:"option_one"`
	OptionTwo string `json:"option_two"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session()
	if !session.Authenticated() {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	question, err := h.state.AddQuestion(r.Context(), session.UserID, req.OptionOne, req.OptionTwo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

type voteRequest struct {
	Option domain.Option `json:"option"`
}

func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Session()
	if !session.Authenticated() {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	questionID := chi.URLParam(r, "id")
	if err := h.state.Vote(r.Context(), session.UserID, questionID, req.Option); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type expandRequest struct {
	Expand bool `json:"expand"`
}

func (h *PollHandler) SetExpanded(w http.ResponseWriter, r *http.Request) {
	var req expandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.polls.SetExpanded(r.Context(), chi.URLParam(r, "id"), req.Expand); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PollHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.leaderboard.Leaderboard())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
