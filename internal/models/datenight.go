package models

import "time"

// DateNight categories match the chips offered in the planner UI.
var DateNightCategories = map[string]bool{
	"movie":    true,
	"dinner":   true,
	"activity": true,
	"virtual":  true,
	"other":    true,
}

// ReminderOffsets are the selectable "minutes before" values.
var ReminderOffsets = map[int]bool{
	15:   true,
	30:   true,
	60:   true,
	120:  true,
	1440: true,
}

// ReminderSettings controls the pre-event reminder for a date night.
type ReminderSettings struct {
	Enabled       bool `bson:"enabled" json:"enabled"`
	OffsetMinutes int  `bson:"offset_minutes" json:"offset_minutes"`
}

// DateNight is a scheduled shared activity owned jointly by a pair.
// Date and CreatedAt are FlexTime because legacy documents carry the
// timestamp as a native datetime, a string, or not at all.
type DateNight struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	PairID      string   `bson:"pair_id" json:"pair_id"`
	CreatedBy   string   `bson:"created_by" json:"created_by"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Location    string   `bson:"location,omitempty" json:"location,omitempty"`
	Category    string   `bson:"category,omitempty" json:"category,omitempty"`
	Date        FlexTime `bson:"date" json:"date"`
	Duration    int      `bson:"duration_minutes" json:"duration_minutes"`
	Completed   bool     `bson:"completed" json:"completed"`

	Reminders ReminderSettings `bson:"reminders" json:"reminders"`

	// CalendarEventIDs maps a user id to that user's external calendar
	// event id mirroring this date night.
	CalendarEventIDs map[string]string `bson:"calendar_event_ids,omitempty" json:"calendar_event_ids,omitempty"`

	CreatedAt FlexTime  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsUpcoming reports whether the date night is still ahead of now and not
// completed. Dates without a parseable timestamp are never upcoming.
func (d *DateNight) IsUpcoming(now time.Time) bool {
	if d.Completed || !d.Date.Valid() {
		return false
	}
	return d.Date.Time().After(now)
}
