package services

import (
	"testing"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datedNight(id, title string, date, created time.Time) models.DateNight {
	return models.DateNight{
		ID:        id,
		Title:     title,
		Date:      models.NewFlexTime(date),
		CreatedAt: models.NewFlexTime(created),
	}
}

func ids(nights []models.DateNight) []string {
	out := make([]string, len(nights))
	for i := range nights {
		out[i] = nights[i].ID
	}
	return out
}

func TestSortPastDateNightsMostRecentFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	input := []models.DateNight{
		datedNight("old", "Old", base.AddDate(0, 0, -20), base.AddDate(0, 0, -21)),
		datedNight("new", "New", base, base.AddDate(0, 0, -1)),
		datedNight("mid", "Mid", base.AddDate(0, 0, -5), base.AddDate(0, 0, -6)),
	}

	sorted := SortPastDateNights(input)

	assert.Equal(t, []string{"new", "mid", "old"}, ids(sorted))
}

func TestSortPastDateNightsFallsBackToCreatedAt(t *testing.T) {
	base := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)

	// "b" has no parseable date; its creation time slots it between the others.
	a := datedNight("a", "A", base, base.AddDate(0, 0, -2))
	b := models.DateNight{ID: "b", Title: "B", CreatedAt: models.NewFlexTime(base.AddDate(0, 0, -3))}
	c := datedNight("c", "C", base.AddDate(0, 0, -10), base.AddDate(0, 0, -11))

	sorted := SortPastDateNights([]models.DateNight{c, b, a})

	assert.Equal(t, []string{"a", "b", "c"}, ids(sorted))
}

func TestSortPastDateNightsRecordsWithoutTimestampsSortLast(t *testing.T) {
	base := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)

	dated := datedNight("dated", "Dated", base, base)
	bare := models.DateNight{ID: "bare", Title: "Bare"}

	sorted := SortPastDateNights([]models.DateNight{bare, dated})

	require.Len(t, sorted, 2)
	assert.Equal(t, []string{"dated", "bare"}, ids(sorted))
}

func TestSortPastDateNightsAllWithoutTimestampsUseTitleOrder(t *testing.T) {
	input := []models.DateNight{
		{ID: "2", Title: "Zoo trip"},
		{ID: "1", Title: "Art walk"},
		{ID: "3", Title: "Movie night"},
	}

	sorted := SortPastDateNights(input)

	assert.Equal(t, []string{"1", "3", "2"}, ids(sorted))
}

func TestSortPastDateNightsTieBreaksOnCreatedAt(t *testing.T) {
	date := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)

	first := datedNight("first", "First", date, date.Add(-2*time.Hour))
	second := datedNight("second", "Second", date, date.Add(-1*time.Hour))

	sorted := SortPastDateNights([]models.DateNight{first, second})

	// Same date, so the later-created record wins.
	assert.Equal(t, []string{"second", "first"}, ids(sorted))
}

func TestSortPastDateNightsIsStableAndNonMutating(t *testing.T) {
	date := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	created := date.Add(-time.Hour)

	input := []models.DateNight{
		datedNight("x", "X", date, created),
		datedNight("y", "Y", date, created),
	}

	sorted := SortPastDateNights(input)

	// Fully tied records keep their input order.
	assert.Equal(t, []string{"x", "y"}, ids(sorted))
	assert.Equal(t, "x", input[0].ID)
	assert.Equal(t, "y", input[1].ID)
}
