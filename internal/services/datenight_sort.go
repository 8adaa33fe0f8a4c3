package services

import (
	"sort"

	"github.com/syncapp/sync-backend/internal/models"
)

// sortKey returns the primary ordering timestamp for a date night: the event
// date when it parses, otherwise the creation timestamp. The second return
// is false when neither parses.
func sortKey(night *models.DateNight) (int64, bool) {
	if night.Date.Valid() {
		return night.Date.UnixMilli(), true
	}
	if night.CreatedAt.Valid() {
		return night.CreatedAt.UnixMilli(), true
	}
	return 0, false
}

// nightBefore is the comparator behind SortPastDateNights. Most recent
// first; records with no usable timestamp at all sort after everything else
// and fall back to title order among themselves.
func nightBefore(a, b *models.DateNight) bool {
	keyA, okA := sortKey(a)
	keyB, okB := sortKey(b)

	if okA != okB {
		return okA
	}
	if !okA && !okB {
		return a.Title < b.Title
	}
	if keyA != keyB {
		return keyA > keyB
	}

	// Tie-break on creation time, also descending.
	createdA := a.CreatedAt.UnixMilli()
	createdB := b.CreatedAt.UnixMilli()
	return createdA > createdB
}

// SortPastDateNights orders past date nights most recent first. The input
// slice is not modified. Tolerates records whose date field was a native
// timestamp, a string, or absent; FlexTime has already normalized those.
func SortPastDateNights(nights []models.DateNight) []models.DateNight {
	sorted := make([]models.DateNight, len(nights))
	copy(sorted, nights)

	sort.SliceStable(sorted, func(i, j int) bool {
		return nightBefore(&sorted[i], &sorted[j])
	})
	return sorted
}
