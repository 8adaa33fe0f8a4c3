package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviews struct {
	both    bool
	missing []string
	err     error
}

func (f *fakeReviews) BothPartnersReviewed(ctx context.Context, dateNightID, u1, u2 string) (bool, error) {
	return f.both, f.err
}

func (f *fakeReviews) MissingReviews(ctx context.Context, dateNightID, u1, u2 string) ([]string, error) {
	return f.missing, f.err
}

type fakePusher struct {
	pushes []pushedReminder
	err    error
}

type pushedReminder struct {
	token string
	body  string
}

func (f *fakePusher) Push(token, title, body string, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.pushes = append(f.pushes, pushedReminder{token: token, body: body})
	return nil
}

func (f *fakePusher) ScheduleAfter(seconds int64, token, title, body string, data map[string]interface{}) error {
	return f.Push(token, title, body, data)
}

func nightDatedDaysAgo(now time.Time, days float64) models.DateNight {
	return models.DateNight{
		ID:    "dn1",
		Title: "Picnic",
		Date:  models.NewFlexTime(now.Add(-time.Duration(days * 24 * float64(time.Hour)))),
	}
}

func newTestPlanner(reviews ReviewReader, pusher *fakePusher, now time.Time) *ReviewReminderPlanner {
	p := NewReviewReminderPlanner(reviews, pusher)
	p.now = func() time.Time { return now }
	return p
}

var testTokens = map[string]string{"userA": "tokenA", "userB": "tokenB"}

func TestPlannerFiresOnExactDayOffset(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA"}}
	pusher := &fakePusher{}

	p := newTestPlanner(reviews, pusher, now)
	p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, 3)}, "userA", "userB", testTokens)

	require.Len(t, pusher.pushes, 1)
	assert.Equal(t, "tokenA", pusher.pushes[0].token)
	assert.Contains(t, pusher.pushes[0].body, "You haven't reviewed")
}

func TestPlannerFloorsFractionalDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA"}}
	pusher := &fakePusher{}

	// 3.9 days since the date floors to 3, which is in window.
	p := newTestPlanner(reviews, pusher, now)
	p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, 3.9)}, "userA", "userB", testTokens)

	assert.Len(t, pusher.pushes, 1)
}

func TestPlannerDoesNotRefireAfterWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA"}}
	pusher := &fakePusher{}

	// 4 days since is past the 3-day window and not yet in the 7-day one.
	p := newTestPlanner(reviews, pusher, now)
	p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, 4)}, "userA", "userB", testTokens)

	assert.Empty(t, pusher.pushes)
}

func TestPlannerSuppressedOnceBothReviewed(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{both: true, missing: []string{}}
	pusher := &fakePusher{}

	p := newTestPlanner(reviews, pusher, now)
	for _, days := range []float64{1, 3, 7, 14} {
		p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, days)}, "userA", "userB", testTokens)
	}

	assert.Empty(t, pusher.pushes)
}

func TestPlannerBothMissingPhrasingAndTargets(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA", "userB"}}
	pusher := &fakePusher{}

	p := newTestPlanner(reviews, pusher, now)
	p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, 1)}, "userA", "userB", testTokens)

	require.Len(t, pusher.pushes, 2)
	assert.Contains(t, pusher.pushes[0].body, "Both of you")
}

func TestPlannerSkipsFutureAndCompletedDates(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA"}}
	pusher := &fakePusher{}

	future := models.DateNight{ID: "dn2", Title: "Future", Date: models.NewFlexTime(now.Add(24 * time.Hour))}
	completed := nightDatedDaysAgo(now, 3)
	completed.Completed = true

	p := newTestPlanner(reviews, pusher, now)
	p.SweepPair(context.Background(), []models.DateNight{future, completed}, "userA", "userB", testTokens)

	assert.Empty(t, pusher.pushes)
}

func TestPlannerSurvivesPushErrors(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{missing: []string{"userA"}}
	pusher := &fakePusher{err: assert.AnError}

	p := newTestPlanner(reviews, pusher, now)
	assert.NotPanics(t, func() {
		p.SweepPair(context.Background(), []models.DateNight{nightDatedDaysAgo(now, 1)}, "userA", "userB", testTokens)
	})
}
