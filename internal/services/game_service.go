package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/sirupsen/logrus"
)

// GameService runs the couple mini-games: session lifecycle, the one-active-
// session-per-type rule, and answer collection for the prompt-driven types.
type GameService struct {
	repo     *repository.GameRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
	hub      *StreamHub
}

func NewGameService(repo *repository.GameRepository, userRepo *repository.UserRepository, notifier notify.Notifier, hub *StreamHub) *GameService {
	return &GameService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
	}
}

// StartGame creates a new session of the given type for the caller's pair.
// If a live session of that type already exists it is returned instead, so a
// second tap joins the running game rather than erroring or duplicating it.
// There is no transaction around the exists-check and the insert; the check
// is re-run immediately before the insert to shrink the race window, and
// reads repair any duplicate that still slips through. The returned bool is
// true when an existing session was resumed.
func (s *GameService) StartGame(ctx context.Context, userID, gameType string) (*models.GameSession, bool, error) {
	if !models.GameTypes[gameType] {
		return nil, false, fmt.Errorf("unknown game type: %s", gameType)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" || user.PartnerID == "" {
		return nil, false, fmt.Errorf("you must be paired with a partner to start a game")
	}

	if existing, err := s.findLiveSession(ctx, user.PairID, gameType); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, true, nil
	}

	session := &models.GameSession{
		PairID:       user.PairID,
		GameType:     gameType,
		Status:       models.GameStatusPending,
		Participants: []string{user.ID, user.PartnerID},
		Questions:    questionsFor(gameType),
	}

	if existing, err := s.findLiveSession(ctx, user.PairID, gameType); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, true, nil
	}

	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create game session: %v", err)
	}

	s.notifyPartner(ctx, user, created)
	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "games.changed",
		PairID:   user.PairID,
		TargetID: created.ID,
	})

	return created, false, nil
}

// GetActiveSessions returns the pair's live sessions, repaired to at most one
// per game type.
func (s *GameService) GetActiveSessions(ctx context.Context, userID string) ([]models.GameSession, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return []models.GameSession{}, nil
	}

	sessions, err := s.repo.GetActiveSessions(ctx, user.PairID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active sessions: %v", err)
	}
	return DedupActiveSessions(sessions), nil
}

// GetRecentCompleted returns the pair's most recently finished sessions.
func (s *GameService) GetRecentCompleted(ctx context.Context, userID string, limit int64) ([]models.GameSession, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return []models.GameSession{}, nil
	}

	sessions, err := s.repo.GetRecentCompleted(ctx, user.PairID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completed sessions: %v", err)
	}

	// The store may have returned them unsorted on fallback.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// SubmitAnswer records the caller's answer to the session's current question.
// Once both partners answer, the session advances; answering the last
// question completes it.
func (s *GameService) SubmitAnswer(ctx context.Context, userID, sessionID, answer string) (*models.GameSession, error) {
	if answer == "" {
		return nil, fmt.Errorf("answer cannot be empty")
	}

	user, session, err := s.authorize(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.GameStatusCompleted {
		return nil, fmt.Errorf("game session is already completed")
	}
	if len(session.Questions) == 0 {
		return nil, fmt.Errorf("game type %s does not take answers here", session.GameType)
	}
	if session.CurrentQuestionIndex >= len(session.Questions) {
		return nil, fmt.Errorf("no question left to answer")
	}

	question := &session.Questions[session.CurrentQuestionIndex]
	if question.Answers == nil {
		question.Answers = make(map[string]string)
	}
	if _, answered := question.Answers[userID]; answered {
		return nil, fmt.Errorf("you already answered this question")
	}
	question.Answers[userID] = answer

	status := models.GameStatusActive
	index := session.CurrentQuestionIndex
	if s.bothAnswered(session, question) {
		index++
		if index >= len(session.Questions) {
			status = models.GameStatusCompleted
		}
	}

	update := map[string]interface{}{
		"questions":              session.Questions,
		"current_question_index": index,
		"status":                 status,
	}
	if err := s.repo.UpdateSession(ctx, sessionID, update); err != nil {
		return nil, fmt.Errorf("failed to record answer: %v", err)
	}

	session.Status = status
	session.CurrentQuestionIndex = index

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "games.changed",
		PairID:   session.PairID,
		TargetID: session.ID,
	})

	return session, nil
}

// AbandonSession deletes a live session, freeing the slot for its type.
func (s *GameService) AbandonSession(ctx context.Context, userID, sessionID string) error {
	user, session, err := s.authorize(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if !session.Live() {
		return fmt.Errorf("only a live session can be abandoned")
	}

	if err := s.repo.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to abandon session: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "games.changed",
		PairID:   session.PairID,
		TargetID: sessionID,
	})
	return nil
}

// findLiveSession returns the pair's live session of the given type, nil
// when none exists.
func (s *GameService) findLiveSession(ctx context.Context, pairID, gameType string) (*models.GameSession, error) {
	sessions, err := s.repo.GetActiveSessions(ctx, pairID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active sessions: %v", err)
	}
	return LiveSessionOfType(sessions, gameType), nil
}

func (s *GameService) authorize(ctx context.Context, userID, sessionID string) (*models.User, *models.GameSession, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("game session not found: %v", err)
	}
	if session.PairID == "" || session.PairID != user.PairID {
		return nil, nil, fmt.Errorf("game session does not belong to your pair")
	}
	return user, session, nil
}

func (s *GameService) bothAnswered(session *models.GameSession, question *models.GameQuestion) bool {
	for _, participant := range session.Participants {
		if _, ok := question.Answers[participant]; !ok {
			return false
		}
	}
	return len(session.Participants) > 0
}

func (s *GameService) notifyPartner(ctx context.Context, user *models.User, session *models.GameSession) {
	partner, err := s.userRepo.GetUserByID(ctx, user.PartnerID)
	if err != nil || partner.PushToken == "" {
		return
	}

	body := fmt.Sprintf("%s started a game of %s. Join in!", user.DisplayName, session.GameType)
	if err := s.notifier.Push(partner.PushToken, "🎮 Game On", body, map[string]interface{}{
		"type":    "gameInvite",
		"game_id": session.ID,
	}); err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"game_id": session.ID,
			"user_id": partner.ID,
		}).Warn("Failed to send game invite notification")
	}
}
