package services

import (
	"testing"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMoodSyncMessageMatchingMoods(t *testing.T) {
	mine := &models.MoodEntry{UserID: "u1", Mood: models.MoodHappy, SharedWith: true}
	partners := &models.MoodEntry{UserID: "u2", Mood: models.MoodHappy, SharedWith: true}

	msg := MoodSyncMessage(mine, partners)

	assert.Contains(t, msg, "both feeling happy")
	assert.Contains(t, msg, "in sync")
}

func TestMoodSyncMessageDifferentMoods(t *testing.T) {
	mine := &models.MoodEntry{Mood: models.MoodHappy, SharedWith: true}
	partners := &models.MoodEntry{Mood: models.MoodTired, SharedWith: true}

	assert.Empty(t, MoodSyncMessage(mine, partners))
}

func TestMoodSyncMessageUnsharedPartnerMood(t *testing.T) {
	mine := &models.MoodEntry{Mood: models.MoodCalm, SharedWith: true}
	partners := &models.MoodEntry{Mood: models.MoodCalm, SharedWith: false}

	assert.Empty(t, MoodSyncMessage(mine, partners))
}

func TestMoodSyncMessageNoPartnerMood(t *testing.T) {
	mine := &models.MoodEntry{Mood: models.MoodCalm, SharedWith: true}

	assert.Empty(t, MoodSyncMessage(mine, nil))
	assert.Empty(t, MoodSyncMessage(nil, mine))
}
