package models

import "time"

// Tic-tac-toe statuses.
const (
	TicTacToeWaiting  = "waiting"
	TicTacToeActive   = "active"
	TicTacToeFinished = "finished"
)

// TicTacToeMove records one placement for the move history.
type TicTacToeMove struct {
	PlayerID  string    `bson:"player_id" json:"player_id"`
	Position  int       `bson:"position" json:"position"` // 0-8
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// TicTacToeGame is the shared board for a pair. The document id is fixed per
// pair (game_<pairId>) so both clients converge on the same game. The board
// is a flat 9-cell array because the store cannot hold nested arrays.
type TicTacToeGame struct {
	ID          string          `bson:"_id" json:"id"`
	PairID      string          `bson:"pair_id" json:"pair_id"`
	Player1ID   string          `bson:"player1_id" json:"player1_id"` // X
	Player2ID   string          `bson:"player2_id" json:"player2_id"` // O
	CurrentTurn string          `bson:"current_turn" json:"current_turn"`
	Board       []string        `bson:"board" json:"board"` // "X", "O" or ""
	Status      string          `bson:"status" json:"status"`
	Winner      string          `bson:"winner,omitempty" json:"winner,omitempty"` // user id or "draw"
	MoveHistory []TicTacToeMove `bson:"move_history,omitempty" json:"move_history,omitempty"`
	StartedAt   time.Time       `bson:"started_at" json:"started_at"`
	FinishedAt  *time.Time      `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}
