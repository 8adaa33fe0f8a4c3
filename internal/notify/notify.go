// Package notify wraps the push-notification collaborator behind the two
// operations the app needs: immediate delivery and fire-after-N-seconds
// scheduling. All scheduling here is best-effort; failures are logged and
// never propagate into the primary action that triggered them.
package notify

import (
	"time"

	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Notifier is the push-notification collaborator.
type Notifier interface {
	Push(deviceToken, title, body string, data map[string]interface{}) error
	ScheduleAfter(seconds int64, deviceToken, title, body string, data map[string]interface{}) error
}

// Scheduler computes reminder fire times and hands them to the collaborator.
type Scheduler struct {
	notifier Notifier
	now      func() time.Time
}

func NewScheduler(notifier Notifier) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		now:      time.Now,
	}
}

// ScheduleEventReminder schedules the pre-event reminder for a date night.
// The fire time is the event time minus the offset; a fire time at or before
// now is skipped outright, never clamped into the near future. Returns true
// when a reminder was handed to the collaborator.
func (s *Scheduler) ScheduleEventReminder(dateNightID, title, deviceToken string, eventTime time.Time, offsetMinutes int) bool {
	fireTime := eventTime.Add(-time.Duration(offsetMinutes) * time.Minute)

	now := s.now()
	if !fireTime.After(now) {
		logger.Log.WithFields(logrus.Fields{
			"date_night_id": dateNightID,
			"fire_time":     fireTime,
		}).Debug("Reminder time already passed, skipping")
		return false
	}

	// The collaborator requires a delay of at least one second.
	delay := int64(fireTime.Sub(now) / time.Second)
	if delay < 1 {
		delay = 1
	}

	body := "Your date \"" + title + "\" is coming up at " + eventTime.Format("3:04 PM")
	err := s.notifier.ScheduleAfter(delay, deviceToken, "📅 Date Night Reminder", body, map[string]interface{}{
		"type":          "dateNightReminder",
		"date_night_id": dateNightID,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("date_night_id", dateNightID).Warn("Failed to schedule reminder notification")
		return false
	}

	logger.Log.WithFields(logrus.Fields{
		"date_night_id": dateNightID,
		"fire_time":     fireTime,
	}).Info("Reminder notification scheduled")
	return true
}
