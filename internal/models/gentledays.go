package models

import "time"

// FeelingChip is one selectable mood chip for a gentle day check-in.
type FeelingChip struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// FeelingChips is the fixed set of chips offered by the check-in screen.
var FeelingChips = []FeelingChip{
	{ID: "calm", Label: "Calm", Emoji: "🌿"},
	{ID: "tender", Label: "Tender", Emoji: "🫧"},
	{ID: "low-energy", Label: "Low energy", Emoji: "🔋"},
	{ID: "need-space", Label: "Need space", Emoji: "🌙"},
	{ID: "affectionate", Label: "Affectionate", Emoji: "💛"},
	{ID: "overwhelmed", Label: "Overwhelmed", Emoji: "🌧️"},
	{ID: "playful", Label: "Playful", Emoji: "✨"},
	{ID: "grateful", Label: "Grateful", Emoji: "🙏"},
}

// FeelingChipByID returns the chip definition, or nil for unknown ids.
func FeelingChipByID(id string) *FeelingChip {
	for i := range FeelingChips {
		if FeelingChips[i].ID == id {
			return &FeelingChips[i]
		}
	}
	return nil
}

// GentleDayStatus is a per-user, per-day check-in. One document per
// (user, day); the latest write for today wins.
type GentleDayStatus struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	PairID        string    `bson:"pair_id" json:"pair_id"`
	Day           string    `bson:"day" json:"day"` // YYYY-MM-DD
	SelectedChips []string  `bson:"selected_chips" json:"selected_chips"`
	Note          string    `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// GentleDaysSettings controls what a user shares with their partner.
// Mutated by the owning user only.
type GentleDaysSettings struct {
	UserID        string    `bson:"_id" json:"user_id"`
	PairID        string    `bson:"pair_id" json:"pair_id"`
	ShareChips    bool      `bson:"share_chips" json:"share_chips"`
	ShareNote     bool      `bson:"share_note" json:"share_note"`
	NotifyPartner bool      `bson:"notify_partner" json:"notify_partner"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultGentleDaysSettings shares chips but not the free-text note.
func DefaultGentleDaysSettings(userID, pairID string) *GentleDaysSettings {
	return &GentleDaysSettings{
		UserID:        userID,
		PairID:        pairID,
		ShareChips:    true,
		ShareNote:     false,
		NotifyPartner: true,
	}
}

// GentleDayPartnerMessage is the derived one-liner shown to the partner.
type GentleDayPartnerMessage struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	PairID    string    `bson:"pair_id" json:"pair_id"`
	Day       string    `bson:"day" json:"day"`
	Message   string    `bson:"message" json:"message"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
