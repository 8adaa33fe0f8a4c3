package models

import "time"

// Invite is a short-lived pairing code one partner creates and the other
// redeems to link the two accounts.
type Invite struct {
	Code      string    `bson:"_id" json:"code"`
	CreatorID string    `bson:"creator_id" json:"creator_id"`
	Used      bool      `bson:"used" json:"used"`
	UsedBy    string    `bson:"used_by,omitempty" json:"used_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
