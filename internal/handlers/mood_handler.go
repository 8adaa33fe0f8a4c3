package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// MoodHandler handles the moods tab.
type MoodHandler struct {
	Service *services.MoodService
}

func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{Service: service}
}

// LogMoodHandler records a mood entry.
func (h *MoodHandler) LogMoodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var entry models.MoodEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.Service.LogMood(r.Context(), claims.UserID, &entry)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to log mood")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// GetRecentMoodsHandler lists the pair's visible mood history.
func (h *MoodHandler) GetRecentMoodsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	moods, err := h.Service.GetRecentMoods(r.Context(), claims.UserID, limit)
	if err != nil {
		http.Error(w, "Failed to fetch moods", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(moods)
}
