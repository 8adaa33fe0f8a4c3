package models

import "time"

// DateReview is one partner's review of a past date night. At most one
// review document exists per (date night, user).
type DateReview struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	DateNightID string    `bson:"date_night_id" json:"date_night_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	UserName    string    `bson:"user_name,omitempty" json:"user_name,omitempty"`
	Rating      int       `bson:"rating" json:"rating"` // 1-5
	Message     string    `bson:"message" json:"message"`
	Emoji       string    `bson:"emoji,omitempty" json:"emoji,omitempty"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	Videos      []string  `bson:"videos,omitempty" json:"videos,omitempty"`
	CreatedAt   FlexTime  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
