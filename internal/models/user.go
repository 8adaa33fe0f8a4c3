package models

import (
	"time"
)

// User represents an account in SYNC. The document id is the stable
// identifier issued at signup and doubles as the key for pairing.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	DisplayName    string    `bson:"display_name" json:"display_name"`
	HashedPassword string    `bson:"hashed_password" json:"-"`
	PhotoURL       string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PartnerID      string    `bson:"partner_id,omitempty" json:"partner_id,omitempty"`
	PairID         string    `bson:"pair_id,omitempty" json:"pair_id,omitempty"`
	PushToken      string    `bson:"push_token,omitempty" json:"-"`
	CalendarToken  string    `bson:"calendar_token,omitempty" json:"-"`
	IsVerified     bool      `bson:"is_verified" json:"is_verified"`
	VerifyToken    string    `bson:"verify_token,omitempty" json:"-"`
	ResetToken     string    `bson:"reset_token,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the partner-visible projection of a user.
type PublicUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}
