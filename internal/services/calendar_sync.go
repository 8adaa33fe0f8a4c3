package services

import (
	"context"
	"errors"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/calendar"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// dateNightCalendarStore is the slice of the date night repository the
// reconciler writes through.
type dateNightCalendarStore interface {
	MarkCompleted(ctx context.Context, id string) error
	SetCalendarEventID(ctx context.Context, id, userID, eventID string) error
}

// CalendarReconciler keeps the pair's date nights and one user's external
// calendar consistent. A mirrored event the user deleted in their calendar
// app means the date night is over as far as they are concerned, so it is
// marked completed here.
type CalendarReconciler struct {
	provider calendar.Provider
	store    dateNightCalendarStore
	now      func() time.Time
}

func NewCalendarReconciler(provider calendar.Provider, store dateNightCalendarStore) *CalendarReconciler {
	return &CalendarReconciler{
		provider: provider,
		store:    store,
		now:      time.Now,
	}
}

// CheckCalendarDeletions walks the given date nights and completes every one
// whose mirrored calendar event no longer exists for this user. Only a
// definitive not-found completes a date; transient provider errors skip the
// event and leave it for the next sweep. Returns the number completed.
func (r *CalendarReconciler) CheckCalendarDeletions(ctx context.Context, nights []models.DateNight, userID, accessToken string) int {
	updated := 0

	for i := range nights {
		night := &nights[i]
		if night.Completed {
			continue
		}
		eventID := night.CalendarEventIDs[userID]
		if eventID == "" {
			continue
		}

		_, err := r.provider.GetEvent(ctx, accessToken, eventID)
		if err == nil {
			continue
		}
		if !errors.Is(err, calendar.ErrNotFound) {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Calendar lookup failed, leaving date night untouched")
			continue
		}

		if err := r.store.MarkCompleted(ctx, night.ID); err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Failed to complete date night after calendar deletion")
			continue
		}

		logger.Log.WithFields(logrus.Fields{
			"date_night_id": night.ID,
			"user_id":       userID,
		}).Info("Date night completed after calendar event deletion")
		updated++
	}
	return updated
}

// SyncMissingEvents creates calendar mirrors for upcoming date nights this
// user has no event for yet, typically dates the partner planned. Returns the
// number of events created; failures are logged per item.
func (r *CalendarReconciler) SyncMissingEvents(ctx context.Context, nights []models.DateNight, userID, accessToken string) int {
	now := r.now()
	created := 0

	for i := range nights {
		night := &nights[i]
		if !night.IsUpcoming(now) {
			continue
		}
		if night.CalendarEventIDs[userID] != "" {
			continue
		}

		eventID, err := r.provider.CreateEvent(ctx, accessToken, mirrorEvent(night))
		if err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Failed to mirror date night into calendar")
			continue
		}
		if err := r.store.SetCalendarEventID(ctx, night.ID, userID, eventID); err != nil {
			logger.Log.WithError(err).WithField("date_night_id", night.ID).Warn("Failed to record calendar event id")
			continue
		}
		created++
	}
	return created
}
