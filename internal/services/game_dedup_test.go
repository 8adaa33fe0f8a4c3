package services

import (
	"testing"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveSession(id, gameType string, created time.Time) models.GameSession {
	return models.GameSession{
		ID:        id,
		GameType:  gameType,
		Status:    models.GameStatusActive,
		CreatedAt: models.NewFlexTime(created),
	}
}

func TestDedupActiveSessionsKeepsNewestPerType(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []models.GameSession{
		liveSession("old-trivia", "trivia", base),
		liveSession("new-trivia", "trivia", base.Add(time.Hour)),
		liveSession("only-question", "question", base),
	}

	deduped := DedupActiveSessions(input)

	require.Len(t, deduped, 2)
	assert.Equal(t, "new-trivia", deduped[0].ID)
	assert.Equal(t, "only-question", deduped[1].ID)
}

func TestDedupActiveSessionsTieKeepsFirstSeen(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []models.GameSession{
		liveSession("first", "trivia", created),
		liveSession("second", "trivia", created),
	}

	deduped := DedupActiveSessions(input)

	require.Len(t, deduped, 1)
	assert.Equal(t, "first", deduped[0].ID)
}

func TestDedupActiveSessionsIsIdempotent(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []models.GameSession{
		liveSession("a", "trivia", base),
		liveSession("b", "trivia", base.Add(time.Minute)),
		liveSession("c", "question", base),
		liveSession("d", "this-or-that", base),
	}

	once := DedupActiveSessions(input)
	twice := DedupActiveSessions(once)

	assert.Equal(t, once, twice)
}

func TestDedupActiveSessionsEmptyInput(t *testing.T) {
	assert.Empty(t, DedupActiveSessions(nil))
	assert.Empty(t, DedupActiveSessions([]models.GameSession{}))
}

func TestLiveSessionOfTypeReturnsExistingSession(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		liveSession("trivia-1", "trivia", base),
		liveSession("question-1", "question", base),
	}

	found := LiveSessionOfType(sessions, "trivia")

	require.NotNil(t, found)
	assert.Equal(t, "trivia-1", found.ID)
}

func TestLiveSessionOfTypeNilWhenNoneOfType(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		liveSession("question-1", "question", base),
	}

	assert.Nil(t, LiveSessionOfType(sessions, "trivia"))
	assert.Nil(t, LiveSessionOfType(nil, "trivia"))
}

func TestLiveSessionOfTypeIgnoresCompletedSessions(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	done := liveSession("trivia-done", "trivia", base)
	done.Status = models.GameStatusCompleted

	assert.Nil(t, LiveSessionOfType([]models.GameSession{done}, "trivia"))
}

func TestLiveSessionOfTypePicksNewestDuplicate(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := []models.GameSession{
		liveSession("old-trivia", "trivia", base),
		liveSession("new-trivia", "trivia", base.Add(5*time.Minute)),
	}

	found := LiveSessionOfType(sessions, "trivia")

	require.NotNil(t, found)
	assert.Equal(t, "new-trivia", found.ID)
}

func TestDedupActiveSessionsHandlesMissingCreatedAt(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// A record with no creation time loses to any dated one.
	undated := models.GameSession{ID: "undated", GameType: "trivia", Status: models.GameStatusActive}
	dated := liveSession("dated", "trivia", base)

	deduped := DedupActiveSessions([]models.GameSession{undated, dated})

	require.Len(t, deduped, 1)
	assert.Equal(t, "dated", deduped[0].ID)
}
