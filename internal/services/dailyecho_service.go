package services

import (
	"context"
	"fmt"
	"time"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/repository"
)

// echoRevealHour is the UTC hour at which the day's answers unlock even if
// one partner never answered.
const echoRevealHour = 20

// DailyEchoService runs the shared daily question. One document per
// (pair, day); both partners answer blind and the answers reveal together.
type DailyEchoService struct {
	repo     *repository.DailyEchoRepository
	userRepo *repository.UserRepository
	hub      *StreamHub
	now      func() time.Time
}

func NewDailyEchoService(repo *repository.DailyEchoRepository, userRepo *repository.UserRepository, hub *StreamHub) *DailyEchoService {
	return &DailyEchoService{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		now:      time.Now,
	}
}

func echoDocID(pairID, day string) string {
	return "echo_" + pairID + "_" + day
}

// QuestionOfTheDay picks the day's question deterministically so both
// partners see the same prompt without coordination.
func QuestionOfTheDay(day time.Time) string {
	daysSinceEpoch := int(day.UTC().Unix() / 86400)
	return models.EchoQuestionBank[daysSinceEpoch%len(models.EchoQuestionBank)]
}

// EchoView is what one partner sees: their own answer always, the partner's
// only after reveal.
type EchoView struct {
	ID            string             `json:"id"`
	Day           string             `json:"day"`
	Question      string             `json:"question"`
	MyAnswer      *models.EchoAnswer `json:"my_answer,omitempty"`
	PartnerAnswer *models.EchoAnswer `json:"partner_answer,omitempty"`
	PartnerDone   bool               `json:"partner_done"`
	IsRevealed    bool               `json:"is_revealed"`
	RevealTime    time.Time          `json:"reveal_time"`
}

// GetToday returns today's echo for the caller's pair, creating the document
// on first access.
func (s *DailyEchoService) GetToday(ctx context.Context, userID string) (*EchoView, error) {
	user, echo, err := s.todayEcho(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.viewFor(ctx, user, echo)
}

// SubmitAnswer records the caller's answer to today's question. Answers are
// write-once per day.
func (s *DailyEchoService) SubmitAnswer(ctx context.Context, userID, answer string) (*EchoView, error) {
	if answer == "" {
		return nil, fmt.Errorf("answer cannot be empty")
	}

	user, echo, err := s.todayEcho(ctx, userID)
	if err != nil {
		return nil, err
	}

	slot, _ := s.answerSlots(user, echo)
	if slot != nil {
		return nil, fmt.Errorf("you already answered today's echo")
	}

	entry := &models.EchoAnswer{
		UserID:     user.ID,
		Answer:     answer,
		AnsweredAt: s.now(),
	}

	// Slots fill in answer order: the first writer takes slot one.
	field := "user1_answer"
	if echo.User1Answer != nil {
		field = "user2_answer"
	}

	update := map[string]interface{}{field: entry}
	if field == "user1_answer" {
		echo.User1Answer = entry
	} else {
		echo.User2Answer = entry
	}

	if echo.User1Answer != nil && echo.User2Answer != nil {
		echo.IsRevealed = true
		update["is_revealed"] = true
	}

	if err := s.repo.UpdateEcho(ctx, echo.ID, update); err != nil {
		return nil, fmt.Errorf("failed to save answer: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "dailyEcho.changed",
		PairID:   user.PairID,
		TargetID: echo.ID,
	})

	return s.viewFor(ctx, user, echo)
}

func (s *DailyEchoService) todayEcho(ctx context.Context, userID string) (*models.User, *models.DailyEcho, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, nil, fmt.Errorf("you must be paired with a partner for the daily echo")
	}

	now := s.now()
	day := dayKey(now)
	id := echoDocID(user.PairID, day)

	echo, err := s.repo.GetEcho(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch daily echo: %v", err)
	}
	if echo == nil {
		midnight := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
		echo = &models.DailyEcho{
			ID:         id,
			PairID:     user.PairID,
			Day:        day,
			Question:   QuestionOfTheDay(now),
			RevealTime: midnight.Add(echoRevealHour * time.Hour),
			CreatedAt:  now,
		}
		if err := s.repo.UpsertEcho(ctx, echo); err != nil {
			return nil, nil, fmt.Errorf("failed to create daily echo: %v", err)
		}
	}
	return user, echo, nil
}

// answerSlots returns the caller's and the partner's answers out of the two
// positional slots.
func (s *DailyEchoService) answerSlots(user *models.User, echo *models.DailyEcho) (mine, partners *models.EchoAnswer) {
	for _, candidate := range []*models.EchoAnswer{echo.User1Answer, echo.User2Answer} {
		if candidate == nil {
			continue
		}
		if candidate.UserID == user.ID {
			mine = candidate
		} else {
			partners = candidate
		}
	}
	return mine, partners
}

func (s *DailyEchoService) viewFor(ctx context.Context, user *models.User, echo *models.DailyEcho) (*EchoView, error) {
	mine, partners := s.answerSlots(user, echo)

	revealed := echo.IsRevealed || !s.now().Before(echo.RevealTime)
	if revealed && !echo.IsRevealed {
		if err := s.repo.UpdateEcho(ctx, echo.ID, map[string]interface{}{"is_revealed": true}); err != nil {
			return nil, fmt.Errorf("failed to reveal daily echo: %v", err)
		}
	}

	view := &EchoView{
		ID:          echo.ID,
		Day:         echo.Day,
		Question:    echo.Question,
		MyAnswer:    mine,
		PartnerDone: partners != nil,
		IsRevealed:  revealed,
		RevealTime:  echo.RevealTime,
	}
	if revealed {
		view.PartnerAnswer = partners
	}
	return view, nil
}
