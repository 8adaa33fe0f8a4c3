package models

import "time"

// Mood types selectable on the moods tab.
const (
	MoodHappy    = "happy"
	MoodLoved    = "loved"
	MoodCalm     = "calm"
	MoodSad      = "sad"
	MoodStressed = "stressed"
	MoodTired    = "tired"
)

// MoodEmojis maps a mood type to its default emoji.
var MoodEmojis = map[string]string{
	MoodHappy:    "😄",
	MoodLoved:    "🥰",
	MoodCalm:     "😌",
	MoodSad:      "😢",
	MoodStressed: "😫",
	MoodTired:    "😴",
}

// MoodEntry is one logged mood for a user.
type MoodEntry struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	PairID      string    `bson:"pair_id" json:"pair_id"`
	Mood        string    `bson:"mood" json:"mood"`
	CustomEmoji string    `bson:"custom_emoji,omitempty" json:"custom_emoji,omitempty"`
	Cause       string    `bson:"cause,omitempty" json:"cause,omitempty"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
	SharedWith  bool      `bson:"shared_with_partner" json:"shared_with_partner"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
