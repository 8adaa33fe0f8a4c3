package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	pushed    []fakeCall
	scheduled []fakeCall
	failWith  error
}

type fakeCall struct {
	seconds int64
	token   string
	title   string
	body    string
	data    map[string]interface{}
}

func (f *fakeNotifier) Push(token, title, body string, data map[string]interface{}) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.pushed = append(f.pushed, fakeCall{token: token, title: title, body: body, data: data})
	return nil
}

func (f *fakeNotifier) ScheduleAfter(seconds int64, token, title, body string, data map[string]interface{}) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.scheduled = append(f.scheduled, fakeCall{seconds: seconds, token: token, title: title, body: body, data: data})
	return nil
}

func newTestScheduler(n Notifier, now time.Time) *Scheduler {
	s := NewScheduler(n)
	s.now = func() time.Time { return now }
	return s
}

func TestScheduleEventReminderComputesDelay(t *testing.T) {
	notifier := &fakeNotifier{}
	now := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	eventTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	s := newTestScheduler(notifier, now)
	ok := s.ScheduleEventReminder("dn1", "Dinner", "token", eventTime, 30)

	require.True(t, ok)
	require.Len(t, notifier.scheduled, 1)
	// Fire time 17:30, so the delay is 30 minutes.
	assert.Equal(t, int64(1800), notifier.scheduled[0].seconds)
	assert.Equal(t, "dn1", notifier.scheduled[0].data["date_night_id"])
}

func TestScheduleEventReminderSkipsPastFireTime(t *testing.T) {
	notifier := &fakeNotifier{}
	now := time.Date(2024, 6, 1, 17, 35, 0, 0, time.UTC)
	eventTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	s := newTestScheduler(notifier, now)
	ok := s.ScheduleEventReminder("dn1", "Dinner", "token", eventTime, 30)

	assert.False(t, ok)
	assert.Empty(t, notifier.scheduled)
}

func TestScheduleEventReminderSkipsFireTimeExactlyNow(t *testing.T) {
	notifier := &fakeNotifier{}
	now := time.Date(2024, 6, 1, 17, 30, 0, 0, time.UTC)
	eventTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	s := newTestScheduler(notifier, now)
	ok := s.ScheduleEventReminder("dn1", "Dinner", "token", eventTime, 30)

	assert.False(t, ok)
	assert.Empty(t, notifier.scheduled)
}

func TestScheduleEventReminderFloorsDelayToOneSecond(t *testing.T) {
	notifier := &fakeNotifier{}
	now := time.Date(2024, 6, 1, 17, 29, 59, 500_000_000, time.UTC)
	eventTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	s := newTestScheduler(notifier, now)
	ok := s.ScheduleEventReminder("dn1", "Dinner", "token", eventTime, 30)

	require.True(t, ok)
	require.Len(t, notifier.scheduled, 1)
	assert.Equal(t, int64(1), notifier.scheduled[0].seconds)
}

func TestScheduleEventReminderSwallowsCollaboratorError(t *testing.T) {
	notifier := &fakeNotifier{failWith: assert.AnError}
	now := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	eventTime := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	s := newTestScheduler(notifier, now)
	ok := s.ScheduleEventReminder("dn1", "Dinner", "token", eventTime, 30)

	assert.False(t, ok)
}
