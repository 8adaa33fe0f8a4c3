package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/calendar"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DateNightService implements the shared date planner: CRUD over the pair's
// date nights, pre-event reminders, and calendar mirroring for both partners.
type DateNightService struct {
	repo       *repository.DateNightRepository
	userRepo   *repository.UserRepository
	reminders  *notify.Scheduler
	reconciler *CalendarReconciler
	hub        *StreamHub
}

func NewDateNightService(repo *repository.DateNightRepository, userRepo *repository.UserRepository, reminders *notify.Scheduler, provider calendar.Provider, hub *StreamHub) *DateNightService {
	return &DateNightService{
		repo:       repo,
		userRepo:   userRepo,
		reminders:  reminders,
		reconciler: NewCalendarReconciler(provider, repo),
		hub:        hub,
	}
}

// DateNightFeed is the planner's two-section listing.
type DateNightFeed struct {
	Upcoming []models.DateNight `json:"upcoming"`
	Past     []models.DateNight `json:"past"`
}

// CreateDateNight validates and stores a new date night, then mirrors it to
// both partners' calendars and schedules their reminders. The side effects
// are best-effort and never fail the create.
func (s *DateNightService) CreateDateNight(ctx context.Context, userID string, night *models.DateNight) (*models.DateNight, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, fmt.Errorf("you must be paired with a partner to plan a date night")
	}

	if night.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !night.Date.Valid() {
		return nil, fmt.Errorf("a valid date is required")
	}
	if night.Category != "" && !models.DateNightCategories[night.Category] {
		return nil, fmt.Errorf("invalid category: %s", night.Category)
	}
	if night.Reminders.Enabled && !models.ReminderOffsets[night.Reminders.OffsetMinutes] {
		return nil, fmt.Errorf("invalid reminder offset: %d", night.Reminders.OffsetMinutes)
	}

	night.PairID = user.PairID
	night.CreatedBy = user.ID
	night.Completed = false

	created, err := s.repo.CreateDateNight(ctx, night)
	if err != nil {
		return nil, fmt.Errorf("failed to create date night: %v", err)
	}

	go s.afterWrite(created, user)

	return created, nil
}

// GetDateNights returns the pair's date nights split into upcoming (soonest
// first) and past (most recent first).
func (s *DateNightService) GetDateNights(ctx context.Context, userID string) (*DateNightFeed, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return &DateNightFeed{Upcoming: []models.DateNight{}, Past: []models.DateNight{}}, nil
	}

	nights, err := s.repo.GetDateNightsByPair(ctx, user.PairID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch date nights: %v", err)
	}

	now := time.Now()
	feed := &DateNightFeed{
		Upcoming: []models.DateNight{},
		Past:     []models.DateNight{},
	}
	for i := range nights {
		if nights[i].IsUpcoming(now) {
			feed.Upcoming = append(feed.Upcoming, nights[i])
		} else {
			feed.Past = append(feed.Past, nights[i])
		}
	}

	// Upcoming reads top-down toward the future; past is most recent first.
	for i, j := 0, len(feed.Upcoming)-1; i < j; i, j = i+1, j-1 {
		feed.Upcoming[i], feed.Upcoming[j] = feed.Upcoming[j], feed.Upcoming[i]
	}
	feed.Past = SortPastDateNights(feed.Past)

	return feed, nil
}

// GetDateNight fetches a single date night, enforcing pair ownership.
func (s *DateNightService) GetDateNight(ctx context.Context, userID, nightID string) (*models.DateNight, error) {
	_, night, err := s.authorize(ctx, userID, nightID)
	return night, err
}

// UpdateDateNight applies a partial update, then re-runs the reminder and
// calendar side effects so a moved date gets a fresh reminder.
func (s *DateNightService) UpdateDateNight(ctx context.Context, userID, nightID string, update map[string]interface{}) (*models.DateNight, error) {
	user, _, err := s.authorize(ctx, userID, nightID)
	if err != nil {
		return nil, err
	}

	if title, ok := update["title"].(string); ok && title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if category, ok := update["category"].(string); ok && category != "" && !models.DateNightCategories[category] {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	if err := s.repo.UpdateDateNight(ctx, nightID, update); err != nil {
		return nil, fmt.Errorf("failed to update date night: %v", err)
	}

	updated, err := s.repo.GetDateNightByID(ctx, nightID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated date night: %v", err)
	}

	go s.afterWrite(updated, user)

	return updated, nil
}

// CompleteDateNight marks a date night as done.
func (s *DateNightService) CompleteDateNight(ctx context.Context, userID, nightID string) error {
	user, night, err := s.authorize(ctx, userID, nightID)
	if err != nil {
		return err
	}

	if err := s.repo.MarkCompleted(ctx, nightID); err != nil {
		return fmt.Errorf("failed to complete date night: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "dateNights.changed",
		PairID:   night.PairID,
		TargetID: nightID,
	})
	return nil
}

// DeleteDateNight removes a date night and both partners' calendar mirrors.
// Mirror cleanup is best-effort; the document delete is what matters.
func (s *DateNightService) DeleteDateNight(ctx context.Context, userID, nightID string) error {
	user, night, err := s.authorize(ctx, userID, nightID)
	if err != nil {
		return err
	}

	for _, member := range s.pairMembers(ctx, user) {
		eventID := night.CalendarEventIDs[member.ID]
		if eventID == "" || member.CalendarToken == "" {
			continue
		}
		if err := s.reconciler.provider.DeleteEvent(ctx, member.CalendarToken, eventID); err != nil && !errors.Is(err, calendar.ErrNotFound) {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"date_night_id": nightID,
				"user_id":       member.ID,
			}).Warn("Failed to remove calendar mirror")
		}
	}

	if err := s.repo.DeleteDateNight(ctx, nightID); err != nil {
		return fmt.Errorf("failed to delete date night: %v", err)
	}

	go s.broadcastDeletion(nightID, user)

	return nil
}

// CheckCalendarDeletions reconciles the user's calendar against the pair's
// upcoming date nights and returns how many were auto-completed because the
// mirrored event disappeared.
func (s *DateNightService) CheckCalendarDeletions(ctx context.Context, userID string) (int, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" || user.CalendarToken == "" {
		return 0, nil
	}

	nights, err := s.repo.GetDateNightsByPair(ctx, user.PairID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch date nights: %v", err)
	}

	updated := s.reconciler.CheckCalendarDeletions(ctx, nights, user.ID, user.CalendarToken)
	if updated > 0 {
		s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
			Type:   "dateNights.changed",
			PairID: user.PairID,
		})
	}
	return updated, nil
}

// SyncPartnerDates mirrors partner-created upcoming date nights that are not
// yet in the user's calendar. Returns how many events were created.
func (s *DateNightService) SyncPartnerDates(ctx context.Context, userID string) (int, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" || user.CalendarToken == "" {
		return 0, nil
	}

	nights, err := s.repo.GetDateNightsByPair(ctx, user.PairID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch date nights: %v", err)
	}

	return s.reconciler.SyncMissingEvents(ctx, nights, user.ID, user.CalendarToken), nil
}

// authorize loads the user and the date night and checks pair ownership.
func (s *DateNightService) authorize(ctx context.Context, userID, nightID string) (*models.User, *models.DateNight, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	night, err := s.repo.GetDateNightByID(ctx, nightID)
	if err != nil {
		return nil, nil, fmt.Errorf("date night not found: %v", err)
	}
	if night.PairID == "" || night.PairID != user.PairID {
		return nil, nil, fmt.Errorf("date night does not belong to your pair")
	}
	return user, night, nil
}

// pairMembers returns the user and, when reachable, their partner. A partner
// fetch failure is logged and the caller proceeds with just the user.
func (s *DateNightService) pairMembers(ctx context.Context, user *models.User) []*models.User {
	members := []*models.User{user}
	if user.PartnerID == "" {
		return members
	}

	partner, err := s.userRepo.GetUserByID(ctx, user.PartnerID)
	if err != nil {
		logger.Log.WithError(err).WithField("partner_id", user.PartnerID).Warn("Failed to fetch partner for date night side effects")
		return members
	}
	return append(members, partner)
}

// afterWrite runs the create/update side effects: calendar mirrors, reminder
// scheduling, and the pair stream event.
func (s *DateNightService) afterWrite(night *models.DateNight, user *models.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	members := s.pairMembers(ctx, user)

	for _, member := range members {
		if member.CalendarToken == "" || night.CalendarEventIDs[member.ID] != "" {
			continue
		}
		eventID, err := s.reconciler.provider.CreateEvent(ctx, member.CalendarToken, mirrorEvent(night))
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"date_night_id": night.ID,
				"user_id":       member.ID,
			}).Warn("Failed to create calendar mirror")
			continue
		}
		if err := s.reconciler.store.SetCalendarEventID(ctx, night.ID, member.ID, eventID); err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Failed to record calendar event id")
		}
	}

	if night.Reminders.Enabled && night.Date.Valid() {
		for _, member := range members {
			if member.PushToken == "" {
				continue
			}
			s.reminders.ScheduleEventReminder(night.ID, night.Title, member.PushToken, night.Date.Time(), night.Reminders.OffsetMinutes)
		}
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "dateNights.changed",
		PairID:   night.PairID,
		TargetID: night.ID,
	})
}

// broadcastDeletion confirms the document is really gone before telling both
// clients to drop it. The refetch gets its own short deadline so a slow store
// cannot hold the goroutine.
func (s *DateNightService) broadcastDeletion(nightID string, user *models.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.repo.GetDateNightByID(ctx, nightID); err == nil {
		logger.Log.WithField("date_night_id", nightID).Warn("Date night still present after delete, skipping removal event")
		return
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "dateNights.removed",
		PairID:   user.PairID,
		TargetID: nightID,
	})
}

func mirrorEvent(night *models.DateNight) *calendar.Event {
	duration := night.Duration
	if duration <= 0 {
		duration = 120
	}
	return &calendar.Event{
		Title:    night.Title,
		Location: night.Location,
		Notes:    night.Description,
		Start:    night.Date.Time(),
		End:      night.Date.Time().Add(time.Duration(duration) * time.Minute),
	}
}
