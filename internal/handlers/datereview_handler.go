package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// maxUploadBytes bounds a review media upload request.
const maxUploadBytes = 64 << 20 // 64 MB

// DateReviewHandler handles post-date reviews and their media uploads.
type DateReviewHandler struct {
	Service *services.DateReviewService
	Media   *services.MediaService
}

func NewDateReviewHandler(service *services.DateReviewService, media *services.MediaService) *DateReviewHandler {
	return &DateReviewHandler{Service: service, Media: media}
}

// SubmitReviewHandler creates or updates the caller's review of a date night.
func (h *DateReviewHandler) SubmitReviewHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	review, err := h.Service.SubmitReview(r.Context(), claims.UserID, mux.Vars(r)["id"], &input)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to submit review")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(review)
}

// GetReviewsHandler lists the reviews of a date night.
func (h *DateReviewHandler) GetReviewsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reviews, err := h.Service.GetReviews(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}

// UploadMediaHandler accepts a multipart batch of review photos and videos
// and returns the stored URLs. Partial failure is reported, not fatal.
func (h *DateReviewHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	var files []services.MediaFile
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				logger.Log.WithError(err).WithField("file", header.Filename).Warn("Failed to open uploaded file")
				continue
			}
			defer file.Close()

			files = append(files, services.MediaFile{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			})
		}
	}
	if len(files) == 0 {
		http.Error(w, "No files in request", http.StatusBadRequest)
		return
	}

	result := h.Media.UploadBatch(r.Context(), claims.UserID, files)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
