package services

import (
	"testing"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestQuestionOfTheDayIsDeterministic(t *testing.T) {
	day := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	// Any time within the same UTC day yields the same question.
	assert.Equal(t, QuestionOfTheDay(day), QuestionOfTheDay(later))
}

func TestQuestionOfTheDayRotatesDaily(t *testing.T) {
	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	assert.NotEqual(t, QuestionOfTheDay(day), QuestionOfTheDay(next))
}

func TestQuestionOfTheDayCoversWholeBank(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	for i := 0; i < len(models.EchoQuestionBank); i++ {
		seen[QuestionOfTheDay(start.AddDate(0, 0, i))] = true
	}

	assert.Len(t, seen, len(models.EchoQuestionBank))
}
