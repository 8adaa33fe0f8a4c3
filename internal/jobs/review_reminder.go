// Package jobs contains the best-effort background sweeps. Each sweep
// catches errors per item so one bad record never aborts the rest of the
// batch, and none of them ever report failure to their caller.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// reviewReminderOffsets are the day marks after a date at which a reminder
// may fire. The planner is in window for offset k exactly when
// floor(daysSince) == k.
var reviewReminderOffsets = []int{1, 3, 7, 14}

// ReviewReader answers which participants still owe a review.
type ReviewReader interface {
	BothPartnersReviewed(ctx context.Context, dateNightID, userID1, userID2 string) (bool, error)
	MissingReviews(ctx context.Context, dateNightID, userID1, userID2 string) ([]string, error)
}

// ReviewReminderPlanner decides, per past date night, whether a "please
// review" notification should fire now. It keeps no state of its own: a
// caller invoking it more than once within the same day window will re-fire.
type ReviewReminderPlanner struct {
	reviews  ReviewReader
	notifier notify.Notifier
	now      func() time.Time
}

func NewReviewReminderPlanner(reviews ReviewReader, notifier notify.Notifier) *ReviewReminderPlanner {
	return &ReviewReminderPlanner{
		reviews:  reviews,
		notifier: notifier,
		now:      time.Now,
	}
}

// SweepPair runs the planner over every past, not-completed date night of a
// pair. pushTokens maps user id to device token; users without a token are
// skipped at delivery time.
func (p *ReviewReminderPlanner) SweepPair(ctx context.Context, nights []models.DateNight, userID1, userID2 string, pushTokens map[string]string) {
	now := p.now()

	for i := range nights {
		night := &nights[i]
		if night.Completed || !night.Date.Valid() {
			continue
		}
		if night.Date.Time().After(now) {
			continue
		}

		if err := p.planFor(ctx, night, userID1, userID2, pushTokens); err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Review reminder planning failed")
		}
	}
}

func (p *ReviewReminderPlanner) planFor(ctx context.Context, night *models.DateNight, userID1, userID2 string, pushTokens map[string]string) error {
	bothReviewed, err := p.reviews.BothPartnersReviewed(ctx, night.ID, userID1, userID2)
	if err != nil {
		return fmt.Errorf("failed to check reviews: %v", err)
	}
	if bothReviewed {
		// Suppressed permanently; nothing left to remind about.
		return nil
	}

	daysSince := int(p.now().Sub(night.Date.Time()).Hours() / 24)

	for _, offset := range reviewReminderOffsets {
		if daysSince != offset {
			continue
		}

		missing, err := p.reviews.MissingReviews(ctx, night.ID, userID1, userID2)
		if err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Failed to list missing reviews")
			continue
		}
		if len(missing) == 0 {
			continue
		}

		var body string
		if len(missing) == 2 {
			body = fmt.Sprintf("Both of you haven't reviewed %q yet. Share your thoughts!", night.Title)
		} else {
			body = fmt.Sprintf("You haven't reviewed %q yet. Don't forget to share your experience!", night.Title)
		}

		data := map[string]interface{}{
			"type":          "reviewReminder",
			"date_night_id": night.ID,
			"days_since":    offset,
		}

		for _, uid := range missing {
			token := pushTokens[uid]
			if token == "" {
				continue
			}
			if err := p.notifier.Push(token, "📝 Review Your Date Night", body, data); err != nil {
				logger.Log.WithError(err).WithFields(logrus.Fields{
					"date_night_id": night.ID,
					"user_id":       uid,
				}).Warn("Failed to send review reminder")
			}
		}
	}
	return nil
}
