package services

import (
	"testing"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func checkIn(chips []string, note string) *models.GentleDayStatus {
	return &models.GentleDayStatus{
		UserID:        "u1",
		Day:           "2024-06-01",
		SelectedChips: chips,
		Note:          note,
	}
}

func sharingAll() *models.GentleDaysSettings {
	return &models.GentleDaysSettings{ShareChips: true, ShareNote: true, NotifyPartner: true}
}

func TestDerivePartnerMessageWithChips(t *testing.T) {
	msg := DerivePartnerMessage("Alex", checkIn([]string{"calm", "grateful"}, ""), sharingAll())

	assert.Contains(t, msg, "Alex is feeling")
	assert.Contains(t, msg, "calm")
	assert.Contains(t, msg, "grateful")
}

func TestDerivePartnerMessageWithNote(t *testing.T) {
	msg := DerivePartnerMessage("Alex", checkIn([]string{"tender"}, "long day at work"), sharingAll())

	assert.Contains(t, msg, "tender")
	assert.Contains(t, msg, `"long day at work"`)
}

func TestDerivePartnerMessageNoteHiddenWhenNotShared(t *testing.T) {
	settings := sharingAll()
	settings.ShareNote = false

	msg := DerivePartnerMessage("Alex", checkIn([]string{"tender"}, "private thoughts"), settings)

	assert.NotContains(t, msg, "private thoughts")
}

func TestDerivePartnerMessageChipsHiddenFallsBackToCheckedIn(t *testing.T) {
	settings := sharingAll()
	settings.ShareChips = false
	settings.ShareNote = false

	msg := DerivePartnerMessage("Alex", checkIn([]string{"overwhelmed"}, ""), settings)

	assert.Contains(t, msg, "Alex checked in today")
	assert.NotContains(t, msg, "overwhelmed")
}

func TestDerivePartnerMessageEmptyCheckIn(t *testing.T) {
	assert.Empty(t, DerivePartnerMessage("Alex", checkIn(nil, ""), sharingAll()))
	assert.Empty(t, DerivePartnerMessage("Alex", nil, sharingAll()))
}

func TestDefaultGentleDaysSettingsSharesChipsNotNote(t *testing.T) {
	settings := models.DefaultGentleDaysSettings("u1", "pair_u1_u2")

	assert.True(t, settings.ShareChips)
	assert.False(t, settings.ShareNote)
	assert.True(t, settings.NotifyPartner)
}
