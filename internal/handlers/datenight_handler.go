package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// DateNightHandler handles HTTP requests related to date nights.
type DateNightHandler struct {
	Service *services.DateNightService
}

func NewDateNightHandler(service *services.DateNightService) *DateNightHandler {
	return &DateNightHandler{Service: service}
}

// CreateDateNightHandler creates a new date night for the caller's pair.
func (h *DateNightHandler) CreateDateNightHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var night models.DateNight
	if err := json.NewDecoder(r.Body).Decode(&night); err != nil {
		logger.Log.WithError(err).Warn("Invalid request payload during date night creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateDateNight(r.Context(), claims.UserID, &night)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to create date night")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetDateNightsHandler returns the pair's upcoming and past date nights.
func (h *DateNightHandler) GetDateNightsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	feed, err := h.Service.GetDateNights(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch date nights")
		http.Error(w, "Failed to fetch date nights", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feed)
}

// GetDateNightHandler returns a single date night.
func (h *DateNightHandler) GetDateNightHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	night, err := h.Service.GetDateNight(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(night)
}

// UpdateDateNightHandler applies a partial update.
func (h *DateNightHandler) UpdateDateNightHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var update map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateDateNight(r.Context(), claims.UserID, mux.Vars(r)["id"], update)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to update date night")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// CompleteDateNightHandler marks a date night as done.
func (h *DateNightHandler) CompleteDateNightHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.CompleteDateNight(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "completed"})
}

// DeleteDateNightHandler removes a date night and its calendar mirrors.
func (h *DateNightHandler) DeleteDateNightHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Service.DeleteDateNight(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		logger.Log.WithError(err).Warn("Failed to delete date night")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

// SyncCalendarHandler reconciles the caller's calendar with the pair's date
// nights: completes dates whose mirrored event was deleted and mirrors
// partner-created dates the caller is missing.
func (h *DateNightHandler) SyncCalendarHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := h.Service.CheckCalendarDeletions(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Error("Calendar reconciliation failed")
		http.Error(w, "Calendar sync failed", http.StatusInternalServerError)
		return
	}

	mirrored, err := h.Service.SyncPartnerDates(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Warn("Partner date mirroring failed")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"updatedCount":  updated,
		"mirroredCount": mirrored,
	})
}
