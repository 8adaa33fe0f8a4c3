package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// InviteHandler handles the pairing invite flow.
type InviteHandler struct {
	Service *services.InviteService
}

func NewInviteHandler(service *services.InviteService) *InviteHandler {
	return &InviteHandler{Service: service}
}

// CreateInviteHandler issues a new pairing code.
func (h *InviteHandler) CreateInviteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	invite, err := h.Service.CreateInvite(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to create invite")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invite)
}

// RedeemInviteHandler links the caller to the invite's creator.
func (h *InviteHandler) RedeemInviteHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		http.Error(w, "Invite code is required", http.StatusBadRequest)
		return
	}

	user, err := h.Service.RedeemInvite(r.Context(), claims.UserID, code)
	if err != nil {
		logger.Log.WithError(err).WithField("code", code).Warn("Failed to redeem invite")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
