package models

import "time"

// Notification is a persisted in-app notification, kept alongside the push
// delivery so the user can review history. Expired entries are purged by a
// daily sweep.
type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Type      string    `bson:"type" json:"type"` // e.g. "date_reminder", "review_reminder"
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	TargetID  string    `bson:"target_id,omitempty" json:"target_id,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
