package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// GentleDaysHandler handles the daily gentle-days check-in.
type GentleDaysHandler struct {
	Service *services.GentleDaysService
}

func NewGentleDaysHandler(service *services.GentleDaysService) *GentleDaysHandler {
	return &GentleDaysHandler{Service: service}
}

// GetChipsHandler returns the fixed feeling-chip catalogue.
func (h *GentleDaysHandler) GetChipsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.FeelingChips)
}

// SetTodayStatusHandler records the caller's check-in for today.
func (h *GentleDaysHandler) SetTodayStatusHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Chips []string `json:"chips"`
		Note  string   `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	status, err := h.Service.SetTodayStatus(r.Context(), claims.UserID, req.Chips, req.Note)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to save gentle day check-in")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// GetTodayHandler returns the caller's own check-in and the partner's
// derived message for today.
func (h *GentleDaysHandler) GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	status, err := h.Service.GetTodayStatus(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch check-in", http.StatusInternalServerError)
		return
	}

	partnerMessage, err := h.Service.GetPartnerMessage(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to fetch partner message")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          status,
		"partner_message": partnerMessage,
	})
}

// GetSettingsHandler returns the caller's sharing settings.
func (h *GentleDaysHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	settings, err := h.Service.GetSettings(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpdateSettingsHandler saves the caller's sharing settings.
func (h *GentleDaysHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var settings models.GentleDaysSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	saved, err := h.Service.UpdateSettings(r.Context(), claims.UserID, &settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}
