package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// DailyEchoHandler handles the shared daily question.
type DailyEchoHandler struct {
	Service *services.DailyEchoService
}

func NewDailyEchoHandler(service *services.DailyEchoService) *DailyEchoHandler {
	return &DailyEchoHandler{Service: service}
}

// GetTodayHandler returns today's echo for the caller's pair.
func (h *DailyEchoHandler) GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.Service.GetToday(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to fetch daily echo")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// SubmitAnswerHandler records the caller's answer to today's question.
func (h *DailyEchoHandler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.Service.SubmitAnswer(r.Context(), claims.UserID, req.Answer)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to submit echo answer")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
