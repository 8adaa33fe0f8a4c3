package services

import (
	"context"
	"testing"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	missing map[string]bool
	failing map[string]bool
	created int
}

func (f *fakeProvider) CreateEvent(ctx context.Context, accessToken string, event *calendar.Event) (string, error) {
	f.created++
	return "ev-new", nil
}

func (f *fakeProvider) GetEvent(ctx context.Context, accessToken, eventID string) (*calendar.Event, error) {
	if f.missing[eventID] {
		return nil, calendar.ErrNotFound
	}
	if f.failing[eventID] {
		return nil, assert.AnError
	}
	return &calendar.Event{ID: eventID}, nil
}

func (f *fakeProvider) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	return nil
}

type fakeNightStore struct {
	completed []string
	linked    map[string]string
	failOn    string
}

func (f *fakeNightStore) MarkCompleted(ctx context.Context, id string) error {
	if id == f.failOn {
		return assert.AnError
	}
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeNightStore) SetCalendarEventID(ctx context.Context, id, userID, eventID string) error {
	if f.linked == nil {
		f.linked = make(map[string]string)
	}
	f.linked[id] = eventID
	return nil
}

func mirroredNight(id, eventID string) models.DateNight {
	return models.DateNight{
		ID:               id,
		Title:            id,
		CalendarEventIDs: map[string]string{"userA": eventID},
	}
}

func TestCheckCalendarDeletionsCompletesMissingEvents(t *testing.T) {
	provider := &fakeProvider{missing: map[string]bool{"ev-gone": true}}
	store := &fakeNightStore{}
	r := NewCalendarReconciler(provider, store)

	nights := []models.DateNight{
		mirroredNight("dn1", "ev-gone"),
		mirroredNight("dn2", "ev-live"),
	}

	updated := r.CheckCalendarDeletions(context.Background(), nights, "userA", "token")

	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"dn1"}, store.completed)
}

func TestCheckCalendarDeletionsSkipsCompletedAndUnmirrored(t *testing.T) {
	provider := &fakeProvider{missing: map[string]bool{"ev-gone": true}}
	store := &fakeNightStore{}
	r := NewCalendarReconciler(provider, store)

	done := mirroredNight("dn1", "ev-gone")
	done.Completed = true
	unmirrored := models.DateNight{ID: "dn2", Title: "dn2"}
	otherUser := models.DateNight{ID: "dn3", CalendarEventIDs: map[string]string{"userB": "ev-gone"}}

	updated := r.CheckCalendarDeletions(context.Background(), []models.DateNight{done, unmirrored, otherUser}, "userA", "token")

	assert.Zero(t, updated)
	assert.Empty(t, store.completed)
}

func TestCheckCalendarDeletionsTransientErrorLeavesNightUntouched(t *testing.T) {
	provider := &fakeProvider{failing: map[string]bool{"ev-flaky": true}}
	store := &fakeNightStore{}
	r := NewCalendarReconciler(provider, store)

	updated := r.CheckCalendarDeletions(context.Background(), []models.DateNight{mirroredNight("dn1", "ev-flaky")}, "userA", "token")

	assert.Zero(t, updated)
	assert.Empty(t, store.completed)
}

func TestCheckCalendarDeletionsStoreFailureSkipsCount(t *testing.T) {
	provider := &fakeProvider{missing: map[string]bool{"ev-a": true, "ev-b": true}}
	store := &fakeNightStore{failOn: "dn1"}
	r := NewCalendarReconciler(provider, store)

	nights := []models.DateNight{
		mirroredNight("dn1", "ev-a"),
		mirroredNight("dn2", "ev-b"),
	}

	updated := r.CheckCalendarDeletions(context.Background(), nights, "userA", "token")

	assert.Equal(t, 1, updated)
	assert.Equal(t, []string{"dn2"}, store.completed)
}

func TestSyncMissingEventsMirrorsPartnerDates(t *testing.T) {
	provider := &fakeProvider{}
	store := &fakeNightStore{}
	r := NewCalendarReconciler(provider, store)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	upcoming := models.DateNight{
		ID:    "dn1",
		Title: "Dinner",
		Date:  models.NewFlexTime(now.Add(48 * time.Hour)),
	}
	alreadyMirrored := models.DateNight{
		ID:               "dn2",
		Title:            "Movie",
		Date:             models.NewFlexTime(now.Add(24 * time.Hour)),
		CalendarEventIDs: map[string]string{"userA": "ev-1"},
	}
	past := models.DateNight{
		ID:    "dn3",
		Title: "Picnic",
		Date:  models.NewFlexTime(now.Add(-24 * time.Hour)),
	}

	created := r.SyncMissingEvents(context.Background(), []models.DateNight{upcoming, alreadyMirrored, past}, "userA", "token")

	require.Equal(t, 1, created)
	assert.Equal(t, "ev-new", store.linked["dn1"])
}
