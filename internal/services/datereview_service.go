package services

import (
	"context"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DateReviewService handles the post-date review flow. One review per
// (date night, user); a resubmission updates the existing review instead of
// creating a duplicate. It also answers the review-reminder sweep's
// questions about who still owes a review.
type DateReviewService struct {
	repo      *repository.DateReviewRepository
	nightRepo *repository.DateNightRepository
	userRepo  *repository.UserRepository
	notifier  notify.Notifier
	hub       *StreamHub
}

func NewDateReviewService(repo *repository.DateReviewRepository, nightRepo *repository.DateNightRepository, userRepo *repository.UserRepository, notifier notify.Notifier, hub *StreamHub) *DateReviewService {
	return &DateReviewService{
		repo:      repo,
		nightRepo: nightRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		hub:       hub,
	}
}

// ReviewInput is the caller-supplied part of a review. Media URLs come from
// the upload endpoint.
type ReviewInput struct {
	Rating  int      `json:"rating"`
	Message string   `json:"message"`
	Emoji   string   `json:"emoji,omitempty"`
	Images  []string `json:"images,omitempty"`
	Videos  []string `json:"videos,omitempty"`
}

// SubmitReview creates or updates the caller's review of a date night.
func (s *DateReviewService) SubmitReview(ctx context.Context, userID, dateNightID string, input *ReviewInput) (*models.DateReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	night, err := s.nightRepo.GetDateNightByID(ctx, dateNightID)
	if err != nil {
		return nil, fmt.Errorf("date night not found: %v", err)
	}
	if night.PairID == "" || night.PairID != user.PairID {
		return nil, fmt.Errorf("date night does not belong to your pair")
	}
	if night.IsUpcoming(time.Now()) {
		return nil, fmt.Errorf("you can only review a date night after it happens")
	}

	existing, err := s.repo.GetUserReview(ctx, dateNightID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %v", err)
	}

	if existing != nil {
		update := map[string]interface{}{
			"rating":  input.Rating,
			"message": input.Message,
			"emoji":   input.Emoji,
		}
		if input.Images != nil {
			update["images"] = input.Images
		}
		if input.Videos != nil {
			update["videos"] = input.Videos
		}
		if err := s.repo.UpdateReview(ctx, existing.ID, update); err != nil {
			return nil, fmt.Errorf("failed to update review: %v", err)
		}

		existing.Rating = input.Rating
		existing.Message = input.Message
		existing.Emoji = input.Emoji
		if input.Images != nil {
			existing.Images = input.Images
		}
		if input.Videos != nil {
			existing.Videos = input.Videos
		}

		s.afterSubmit(ctx, user, night, false)
		return existing, nil
	}

	review := &models.DateReview{
		DateNightID: dateNightID,
		UserID:      userID,
		UserName:    user.DisplayName,
		Rating:      input.Rating,
		Message:     input.Message,
		Emoji:       input.Emoji,
		Images:      input.Images,
		Videos:      input.Videos,
	}
	created, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %v", err)
	}

	s.afterSubmit(ctx, user, night, true)
	return created, nil
}

// GetReviews returns the reviews for a date night, newest first.
func (s *DateReviewService) GetReviews(ctx context.Context, userID, dateNightID string) ([]models.DateReview, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	night, err := s.nightRepo.GetDateNightByID(ctx, dateNightID)
	if err != nil {
		return nil, fmt.Errorf("date night not found: %v", err)
	}
	if night.PairID == "" || night.PairID != user.PairID {
		return nil, fmt.Errorf("date night does not belong to your pair")
	}

	return s.repo.GetReviewsByDateNight(ctx, dateNightID)
}

// BothPartnersReviewed reports whether both partners have reviewed the date
// night. Once true, reminders stop for good.
func (s *DateReviewService) BothPartnersReviewed(ctx context.Context, dateNightID, userID1, userID2 string) (bool, error) {
	missing, err := s.MissingReviews(ctx, dateNightID, userID1, userID2)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// MissingReviews lists the partners who have not reviewed the date night yet.
func (s *DateReviewService) MissingReviews(ctx context.Context, dateNightID, userID1, userID2 string) ([]string, error) {
	missing := []string{}
	for _, uid := range []string{userID1, userID2} {
		review, err := s.repo.GetUserReview(ctx, dateNightID, uid)
		if err != nil {
			return nil, fmt.Errorf("failed to check review for %s: %v", uid, err)
		}
		if review == nil {
			missing = append(missing, uid)
		}
	}
	return missing, nil
}

func (s *DateReviewService) afterSubmit(ctx context.Context, user *models.User, night *models.DateNight, isNew bool) {
	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "dateReviews.changed",
		PairID:   night.PairID,
		TargetID: night.ID,
	})

	if !isNew || user.PartnerID == "" {
		return
	}
	partner, err := s.userRepo.GetUserByID(ctx, user.PartnerID)
	if err != nil || partner.PushToken == "" {
		return
	}

	body := fmt.Sprintf("%s just reviewed %q. See what they thought!", user.DisplayName, night.Title)
	if err := s.notifier.Push(partner.PushToken, "💬 New Date Review", body, map[string]interface{}{
		"type":          "newReview",
		"date_night_id": night.ID,
	}); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"date_night_id": night.ID,
			"user_id":       partner.ID,
		}).Warn("Failed to send review notification")
	}
}
