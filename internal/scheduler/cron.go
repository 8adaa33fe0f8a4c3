// Package scheduler wires the periodic background sweeps: hourly review
// reminders, hourly calendar reconciliation, and the daily notification
// purge.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/syncapp/sync-backend/internal/jobs"
	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/logger"
)

const sweepTimeout = 5 * time.Minute

// Scheduler owns the cron instance and the sweep dependencies.
type Scheduler struct {
	cron          *cron.Cron
	userRepo      *repository.UserRepository
	nightRepo     *repository.DateNightRepository
	planner       *jobs.ReviewReminderPlanner
	dateNights    *services.DateNightService
	notifications *services.NotificationService
}

func New(userRepo *repository.UserRepository, nightRepo *repository.DateNightRepository, planner *jobs.ReviewReminderPlanner, dateNights *services.DateNightService, notifications *services.NotificationService) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		userRepo:      userRepo,
		nightRepo:     nightRepo,
		planner:       planner,
		dateNights:    dateNights,
		notifications: notifications,
	}
}

// Start registers the sweeps and starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.AddFunc("0 * * * *", s.sweepReviewReminders)
	s.cron.AddFunc("30 * * * *", s.sweepCalendars)
	s.cron.AddFunc("0 3 * * *", s.purgeNotifications)

	s.cron.Start()
	logger.Log.Info("Background scheduler started")
}

// Stop halts the cron loop; running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweepReviewReminders runs the review-reminder planner over every pair.
func (s *Scheduler) sweepReviewReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	users, err := s.userRepo.GetPairedUsers(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Review reminder sweep aborted")
		return
	}

	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	for i := range users {
		user := &users[i]
		// Visit each pair once.
		if user.PairID == "" || user.ID > user.PartnerID {
			continue
		}
		partner, ok := byID[user.PartnerID]
		if !ok {
			continue
		}

		nights, err := s.nightRepo.GetDateNightsByPair(ctx, user.PairID)
		if err != nil {
			logger.Log.WithError(err).WithField("pair_id", user.PairID).Warn("Failed to fetch date nights for reminder sweep")
			continue
		}

		tokens := map[string]string{
			user.ID:    user.PushToken,
			partner.ID: partner.PushToken,
		}
		s.planner.SweepPair(ctx, nights, user.ID, partner.ID, tokens)
	}
}

// sweepCalendars reconciles every connected calendar against its pair's
// date nights.
func (s *Scheduler) sweepCalendars() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	users, err := s.userRepo.GetPairedUsers(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Calendar sweep aborted")
		return
	}

	for i := range users {
		user := &users[i]
		if user.CalendarToken == "" {
			continue
		}
		if _, err := s.dateNights.CheckCalendarDeletions(ctx, user.ID); err != nil {
			logger.Log.WithError(err).WithField("user_id", user.ID).Warn("Calendar reconciliation failed")
		}
	}
}

func (s *Scheduler) purgeNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if err := s.notifications.PurgeExpired(ctx); err != nil {
		logger.Log.WithError(err).Error("Notification purge failed")
	}
}
