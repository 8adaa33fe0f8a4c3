package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// GentleDaysService runs the low-pressure daily check-in: feeling chips, an
// optional private note, and a derived one-liner the partner sees instead of
// the raw check-in.
type GentleDaysService struct {
	repo     *repository.GentleDaysRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
	hub      *StreamHub
	now      func() time.Time
}

func NewGentleDaysService(repo *repository.GentleDaysRepository, userRepo *repository.UserRepository, notifier notify.Notifier, hub *StreamHub) *GentleDaysService {
	return &GentleDaysService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
		now:      time.Now,
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SetTodayStatus records the user's check-in for today and republishes the
// partner-visible message according to the sharing settings.
func (s *GentleDaysService) SetTodayStatus(ctx context.Context, userID string, chipIDs []string, note string) (*models.GentleDayStatus, error) {
	for _, id := range chipIDs {
		if models.FeelingChipByID(id) == nil {
			return nil, fmt.Errorf("unknown feeling chip: %s", id)
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, fmt.Errorf("you must be paired with a partner for gentle days")
	}

	status := &models.GentleDayStatus{
		UserID:        user.ID,
		PairID:        user.PairID,
		Day:           dayKey(s.now()),
		SelectedChips: chipIDs,
		Note:          note,
	}
	if err := s.repo.UpsertStatus(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to save check-in: %v", err)
	}

	settings, err := s.settingsFor(ctx, user)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to load gentle days settings, using defaults")
		settings = models.DefaultGentleDaysSettings(user.ID, user.PairID)
	}

	message := DerivePartnerMessage(user.DisplayName, status, settings)
	if err := s.repo.UpsertPartnerMessage(ctx, &models.GentleDayPartnerMessage{
		UserID:  user.ID,
		PairID:  user.PairID,
		Day:     status.Day,
		Message: message,
	}); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to publish partner message")
	}

	if settings.NotifyPartner && user.PartnerID != "" && message != "" {
		s.pushToPartner(ctx, user, message)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:   "gentleDays.changed",
		PairID: user.PairID,
	})
	return status, nil
}

// GetTodayStatus returns the caller's own check-in for today, or nil.
func (s *GentleDaysService) GetTodayStatus(ctx context.Context, userID string) (*models.GentleDayStatus, error) {
	return s.repo.GetStatus(ctx, userID, dayKey(s.now()))
}

// GetPartnerMessage returns the derived one-liner the partner published for
// today, or nil when they haven't checked in.
func (s *GentleDaysService) GetPartnerMessage(ctx context.Context, userID string) (*models.GentleDayPartnerMessage, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PartnerID == "" {
		return nil, nil
	}
	return s.repo.GetPartnerMessage(ctx, user.PartnerID, dayKey(s.now()))
}

// GetSettings returns the caller's sharing settings, falling back to the
// defaults when never saved.
func (s *GentleDaysService) GetSettings(ctx context.Context, userID string) (*models.GentleDaysSettings, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	return s.settingsFor(ctx, user)
}

// UpdateSettings saves the caller's sharing settings.
func (s *GentleDaysService) UpdateSettings(ctx context.Context, userID string, settings *models.GentleDaysSettings) (*models.GentleDaysSettings, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	settings.UserID = user.ID
	settings.PairID = user.PairID
	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %v", err)
	}
	return settings, nil
}

func (s *GentleDaysService) settingsFor(ctx context.Context, user *models.User) (*models.GentleDaysSettings, error) {
	settings, err := s.repo.GetSettings(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return models.DefaultGentleDaysSettings(user.ID, user.PairID), nil
	}
	return settings, nil
}

func (s *GentleDaysService) pushToPartner(ctx context.Context, user *models.User, message string) {
	partner, err := s.userRepo.GetUserByID(ctx, user.PartnerID)
	if err != nil || partner.PushToken == "" {
		return
	}
	if err := s.notifier.Push(partner.PushToken, "🫧 Gentle Days", message, map[string]interface{}{
		"type": "gentleDayUpdate",
	}); err != nil {
		logger.Log.WithError(err).WithField("user_id", partner.ID).Warn("Failed to send gentle day notification")
	}
}

// DerivePartnerMessage builds the one-liner a partner sees from a check-in,
// honoring the sharing settings. Chips off and note off yields a bare
// "checked in" line; nothing selected at all yields "".
func DerivePartnerMessage(displayName string, status *models.GentleDayStatus, settings *models.GentleDaysSettings) string {
	if status == nil || (len(status.SelectedChips) == 0 && status.Note == "") {
		return ""
	}

	var parts []string
	if settings.ShareChips && len(status.SelectedChips) > 0 {
		labels := make([]string, 0, len(status.SelectedChips))
		for _, id := range status.SelectedChips {
			if chip := models.FeelingChipByID(id); chip != nil {
				labels = append(labels, strings.ToLower(chip.Label)+" "+chip.Emoji)
			}
		}
		if len(labels) > 0 {
			parts = append(parts, fmt.Sprintf("%s is feeling %s today", displayName, strings.Join(labels, ", ")))
		}
	}
	if settings.ShareNote && status.Note != "" {
		parts = append(parts, fmt.Sprintf("%q", status.Note))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s checked in today 💛", displayName)
	}
	return strings.Join(parts, " · ")
}
