package models

import "time"

// EchoAnswer is one partner's answer to the daily question.
type EchoAnswer struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	Answer     string    `bson:"answer" json:"answer"`
	AnsweredAt time.Time `bson:"answered_at" json:"answered_at"`
}

// DailyEcho is the shared daily question document for a pair. The document
// id is fixed per (pair, day) so both clients converge on the same echo.
type DailyEcho struct {
	ID          string      `bson:"_id" json:"id"`
	PairID      string      `bson:"pair_id" json:"pair_id"`
	Day         string      `bson:"day" json:"day"` // YYYY-MM-DD
	Question    string      `bson:"question" json:"question"`
	User1Answer *EchoAnswer `bson:"user1_answer,omitempty" json:"user1_answer,omitempty"`
	User2Answer *EchoAnswer `bson:"user2_answer,omitempty" json:"user2_answer,omitempty"`
	RevealTime  time.Time   `bson:"reveal_time" json:"reveal_time"`
	IsRevealed  bool        `bson:"is_revealed" json:"is_revealed"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}

// EchoQuestionBank rotates one question per day.
var EchoQuestionBank = []string{
	"What's one thing that made you think of me today?",
	"What made you smile today?",
	"What's something you're looking forward to?",
	"What's a small victory you had today?",
	"What's something you're grateful for right now?",
	"If you could tell me one thing right now, what would it be?",
	"What's been on your mind lately?",
	"What's something that challenged you today?",
	"What's a memory of us that made you happy recently?",
	"What do you need most right now?",
	"What's something you want to learn together?",
	"What's a dream you still want to chase?",
	"What made you feel loved today?",
	"What's something silly that made you laugh?",
	"What would your perfect day with me look like?",
	"What's something you appreciate about yourself?",
	"What's a song that reminds you of us?",
	"What's something you want to tell me but haven't yet?",
	"What's making you feel energized or drained right now?",
	"What's a tradition you'd love for us to start?",
	"What's something that surprised you today?",
	"What do you miss most when we're apart?",
	"What's a compliment you wish I'd give you more?",
	"What's your favorite way I show you love?",
	"What's something you're proud of me for?",
	"What's a place you'd love to visit together?",
	"What's something that made you feel peaceful today?",
	"What's a hobby you'd like us to try together?",
	"What's your favorite quality about us as a couple?",
	"What's something you want more of in your life?",
}
