package services

import (
	"context"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// moodSyncWindow bounds how far apart two moods can be logged and still
// count as "in sync" for the day.
const moodSyncWindow = 12 * time.Hour

// MoodService handles the moods tab: logging, pair history, and the
// mood-sync message shown when both partners log the same mood close
// together.
type MoodService struct {
	repo     *repository.MoodRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
	hub      *StreamHub
}

func NewMoodService(repo *repository.MoodRepository, userRepo *repository.UserRepository, notifier notify.Notifier, hub *StreamHub) *MoodService {
	return &MoodService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
	}
}

// MoodLogResult is the response to logging a mood, including the sync
// message when the partner recently logged the same mood.
type MoodLogResult struct {
	Entry       *models.MoodEntry `json:"entry"`
	SyncMessage string            `json:"sync_message,omitempty"`
}

// LogMood records a mood entry and, when shared, tells the partner.
func (s *MoodService) LogMood(ctx context.Context, userID string, entry *models.MoodEntry) (*MoodLogResult, error) {
	if _, ok := models.MoodEmojis[entry.Mood]; !ok {
		return nil, fmt.Errorf("unknown mood: %s", entry.Mood)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, fmt.Errorf("you must be paired with a partner to log moods")
	}

	entry.UserID = user.ID
	entry.PairID = user.PairID
	if entry.CustomEmoji == "" {
		entry.CustomEmoji = models.MoodEmojis[entry.Mood]
	}

	created, err := s.repo.CreateMood(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to log mood: %v", err)
	}

	result := &MoodLogResult{Entry: created}

	if entry.SharedWith && user.PartnerID != "" {
		partnerMood, err := s.repo.GetLatestMood(ctx, user.PartnerID, time.Now().Add(-moodSyncWindow))
		if err != nil {
			logger.Log.WithError(err).WithField("partner_id", user.PartnerID).Warn("Failed to check partner mood for sync")
		} else {
			result.SyncMessage = MoodSyncMessage(created, partnerMood)
		}
		s.notifyPartner(ctx, user, created, result.SyncMessage)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:   "moods.changed",
		PairID: user.PairID,
	})
	return result, nil
}

// GetRecentMoods returns the pair's shared mood history, newest first. The
// caller always sees their own entries; the partner's unshared entries are
// filtered out.
func (s *MoodService) GetRecentMoods(ctx context.Context, userID string, limit int64) ([]models.MoodEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return []models.MoodEntry{}, nil
	}

	moods, err := s.repo.GetRecentMoods(ctx, user.PairID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods: %v", err)
	}

	visible := make([]models.MoodEntry, 0, len(moods))
	for _, mood := range moods {
		if mood.UserID == userID || mood.SharedWith {
			visible = append(visible, mood)
		}
	}
	return visible, nil
}

// MoodSyncMessage returns the celebratory line when both partners logged the
// same mood within the sync window, or "" when they didn't.
func MoodSyncMessage(mine, partners *models.MoodEntry) string {
	if mine == nil || partners == nil {
		return ""
	}
	if !partners.SharedWith || mine.Mood != partners.Mood {
		return ""
	}
	emoji := models.MoodEmojis[mine.Mood]
	return fmt.Sprintf("You're both feeling %s %s You're in sync!", mine.Mood, emoji)
}

func (s *MoodService) notifyPartner(ctx context.Context, user *models.User, entry *models.MoodEntry, syncMessage string) {
	partner, err := s.userRepo.GetUserByID(ctx, user.PartnerID)
	if err != nil || partner.PushToken == "" {
		return
	}

	body := fmt.Sprintf("%s is feeling %s %s", user.DisplayName, entry.Mood, entry.CustomEmoji)
	if syncMessage != "" {
		body = syncMessage
	}

	if err := s.notifier.Push(partner.PushToken, "💞 Mood Update", body, map[string]interface{}{
		"type": "moodUpdate",
	}); err != nil {
		logger.Log.WithError(err).WithField("user_id", partner.ID).Warn("Failed to send mood notification")
	}
}
