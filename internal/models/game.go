package models

import "time"

// Game session statuses.
const (
	GameStatusPending   = "pending"
	GameStatusActive    = "active"
	GameStatusCompleted = "completed"
)

// GameTypes is the fixed set of playable mini-games.
var GameTypes = map[string]bool{
	"tic-tac-toe":      true,
	"question":         true,
	"trivia":           true,
	"would-you-rather": true,
	"this-or-that":     true,
}

// GameQuestion is one prompt in a session. Answers is keyed by user id.
type GameQuestion struct {
	Text    string            `bson:"text" json:"text"`
	Options []string          `bson:"options,omitempty" json:"options,omitempty"`
	Answers map[string]string `bson:"answers,omitempty" json:"answers,omitempty"`
}

// GameSession is one playthrough of a game type for a pair.
type GameSession struct {
	ID                   string         `bson:"_id,omitempty" json:"id"`
	PairID               string         `bson:"pair_id" json:"pair_id"`
	GameType             string         `bson:"game_type" json:"game_type"`
	Status               string         `bson:"status" json:"status"`
	Participants         []string       `bson:"participants" json:"participants"`
	Questions            []GameQuestion `bson:"questions" json:"questions"`
	CurrentQuestionIndex int            `bson:"current_question_index" json:"current_question_index"`
	CreatedAt            FlexTime       `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `bson:"updated_at" json:"updated_at"`
}

// Live reports whether the session still counts against the one-active-
// session-per-type rule.
func (g *GameSession) Live() bool {
	return g.Status == GameStatusPending || g.Status == GameStatusActive
}
