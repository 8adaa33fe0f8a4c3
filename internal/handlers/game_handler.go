package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// GameHandler handles the mini-game sessions and the tic-tac-toe board.
type GameHandler struct {
	Service   *services.GameService
	TicTacToe *services.TicTacToeService
}

func NewGameHandler(service *services.GameService, ticTacToe *services.TicTacToeService) *GameHandler {
	return &GameHandler{Service: service, TicTacToe: ticTacToe}
}

// StartGameHandler creates a new session of the requested type, or returns
// the pair's already-live session of that type.
func (h *GameHandler) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		GameType string `json:"game_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	session, resumed, err := h.Service.StartGame(r.Context(), claims.UserID, req.GameType)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to start game")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !resumed {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(session)
}

// GetActiveSessionsHandler lists the pair's live sessions, one per type.
func (h *GameHandler) GetActiveSessionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := h.Service.GetActiveSessions(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch active sessions")
		http.Error(w, "Failed to fetch active sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// GetRecentCompletedHandler lists recently finished sessions.
func (h *GameHandler) GetRecentCompletedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	sessions, err := h.Service.GetRecentCompleted(r.Context(), claims.UserID, limit)
	if err != nil {
		http.Error(w, "Failed to fetch completed sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
}

// SubmitAnswerHandler records the caller's answer to the current question.
func (h *GameHandler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	session, err := h.Service.SubmitAnswer(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Answer)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to submit answer")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// AbandonSessionHandler deletes a live session.
func (h *GameHandler) AbandonSessionHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.AbandonSession(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "abandoned"})
}

// StartTicTacToeHandler creates or restarts the pair's board.
func (h *GameHandler) StartTicTacToeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	game, err := h.TicTacToe.StartGame(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(game)
}

// GetTicTacToeHandler returns the pair's current board.
func (h *GameHandler) GetTicTacToeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	game, err := h.TicTacToe.GetGame(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch game", http.StatusInternalServerError)
		return
	}
	if game == nil {
		http.Error(w, "No game in progress", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(game)
}

// TicTacToeMoveHandler places the caller's mark.
func (h *GameHandler) TicTacToeMoveHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Position int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	game, err := h.TicTacToe.MakeMove(r.Context(), claims.UserID, req.Position)
	if err != nil {
		logger.Log.WithError(err).Warn("Rejected tic-tac-toe move")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(game)
}

// ResetTicTacToeHandler clears the pair's board.
func (h *GameHandler) ResetTicTacToeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.TicTacToe.ResetGame(r.Context(), claims.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reset"})
}
