package services

import (
	"context"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/repository"
)

// winningLines are the eight index triples of a 3x3 board flattened to nine
// cells.
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// TicTacToeService runs the pair's shared tic-tac-toe board. One board
// document exists per pair with a fixed id, so both clients always converge
// on the same game.
type TicTacToeService struct {
	repo     *repository.TicTacToeRepository
	userRepo *repository.UserRepository
	hub      *StreamHub
}

func NewTicTacToeService(repo *repository.TicTacToeRepository, userRepo *repository.UserRepository, hub *StreamHub) *TicTacToeService {
	return &TicTacToeService{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
	}
}

func boardDocID(pairID string) string {
	return "game_" + pairID
}

// StartGame creates or restarts the pair's board. The starter plays X and
// moves first.
func (s *TicTacToeService) StartGame(ctx context.Context, userID string) (*models.TicTacToeGame, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" || user.PartnerID == "" {
		return nil, fmt.Errorf("you must be paired with a partner to play")
	}

	existing, err := s.repo.GetGame(ctx, boardDocID(user.PairID))
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing game: %v", err)
	}
	if existing != nil && existing.Status == models.TicTacToeActive {
		return nil, fmt.Errorf("a game is already in progress")
	}

	game := &models.TicTacToeGame{
		ID:          boardDocID(user.PairID),
		PairID:      user.PairID,
		Player1ID:   user.ID,
		Player2ID:   user.PartnerID,
		CurrentTurn: user.ID,
		Board:       make([]string, 9),
		Status:      models.TicTacToeActive,
		StartedAt:   time.Now(),
	}
	for i := range game.Board {
		game.Board[i] = ""
	}

	if err := s.repo.UpsertGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to start game: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "ticTacToe.changed",
		PairID:   user.PairID,
		TargetID: game.ID,
	})
	return game, nil
}

// GetGame returns the pair's current board, or nil when none exists.
func (s *TicTacToeService) GetGame(ctx context.Context, userID string) (*models.TicTacToeGame, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, nil
	}
	return s.repo.GetGame(ctx, boardDocID(user.PairID))
}

// MakeMove places the caller's mark at the given cell. Enforces turn order,
// cell vacancy, and game liveness, then settles any win or draw.
func (s *TicTacToeService) MakeMove(ctx context.Context, userID string, position int) (*models.TicTacToeGame, error) {
	if position < 0 || position > 8 {
		return nil, fmt.Errorf("position must be between 0 and 8")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, fmt.Errorf("you must be paired with a partner to play")
	}

	game, err := s.repo.GetGame(ctx, boardDocID(user.PairID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game: %v", err)
	}
	if game == nil {
		return nil, fmt.Errorf("no game in progress")
	}
	if game.Status != models.TicTacToeActive {
		return nil, fmt.Errorf("the game is over")
	}
	if game.CurrentTurn != userID {
		return nil, fmt.Errorf("it's not your turn")
	}
	if game.Board[position] != "" {
		return nil, fmt.Errorf("that cell is already taken")
	}

	mark := "X"
	nextTurn := game.Player2ID
	if userID == game.Player2ID {
		mark = "O"
		nextTurn = game.Player1ID
	}

	game.Board[position] = mark
	game.CurrentTurn = nextTurn
	game.MoveHistory = append(game.MoveHistory, models.TicTacToeMove{
		PlayerID:  userID,
		Position:  position,
		Timestamp: time.Now(),
	})

	if winner := WinnerOf(game.Board); winner != "" {
		game.Status = models.TicTacToeFinished
		game.CurrentTurn = ""
		now := time.Now()
		game.FinishedAt = &now
		if winner == "draw" {
			game.Winner = "draw"
		} else if winner == "X" {
			game.Winner = game.Player1ID
		} else {
			game.Winner = game.Player2ID
		}
	}

	if err := s.repo.UpsertGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save move: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "ticTacToe.changed",
		PairID:   user.PairID,
		TargetID: game.ID,
	})
	return game, nil
}

// ResetGame deletes the pair's board so either partner can start fresh.
func (s *TicTacToeService) ResetGame(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return fmt.Errorf("you must be paired with a partner to play")
	}

	if err := s.repo.DeleteGame(ctx, boardDocID(user.PairID)); err != nil {
		return fmt.Errorf("failed to reset game: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:   "ticTacToe.changed",
		PairID: user.PairID,
	})
	return nil
}

// WinnerOf inspects a nine-cell board and returns "X" or "O" for a completed
// line, "draw" when the board is full with no line, and "" while the game is
// still open.
func WinnerOf(board []string) string {
	for _, line := range winningLines {
		mark := board[line[0]]
		if mark != "" && mark == board[line[1]] && mark == board[line[2]] {
			return mark
		}
	}
	for _, cell := range board {
		if cell == "" {
			return ""
		}
	}
	return "draw"
}
