package services

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/pairing"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// inviteCodeAlphabet omits the easily confused 0/O and 1/I characters.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 6

// InviteService handles pairing: one partner creates a short code, the other
// redeems it, and the two accounts are linked under the canonical pair id.
type InviteService struct {
	repo     *repository.InviteRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
	hub      *StreamHub
}

func NewInviteService(repo *repository.InviteRepository, userRepo *repository.UserRepository, notifier notify.Notifier, hub *StreamHub) *InviteService {
	return &InviteService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		hub:      hub,
	}
}

// CreateInvite issues a new pairing code for an unpaired user.
func (s *InviteService) CreateInvite(ctx context.Context, userID string) (*models.Invite, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PartnerID != "" {
		return nil, fmt.Errorf("you are already paired")
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %v", err)
	}

	invite := &models.Invite{
		Code:      code,
		CreatorID: user.ID,
	}
	if err := s.repo.CreateInvite(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %v", err)
	}
	return invite, nil
}

// RedeemInvite links the redeemer and the invite's creator as partners.
func (s *InviteService) RedeemInvite(ctx context.Context, userID, code string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PartnerID != "" {
		return nil, fmt.Errorf("you are already paired")
	}

	invite, err := s.repo.GetInvite(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("invite code not found")
	}
	if invite.Used {
		return nil, fmt.Errorf("this invite code was already used")
	}
	if invite.CreatorID == user.ID {
		return nil, fmt.Errorf("you cannot redeem your own invite")
	}

	creator, err := s.userRepo.GetUserByID(ctx, invite.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("invite creator no longer exists")
	}
	if creator.PartnerID != "" {
		return nil, fmt.Errorf("the invite creator is already paired")
	}

	pairID := pairing.DeriveID(user.ID, creator.ID)

	if err := s.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"partner_id": creator.ID,
		"pair_id":    pairID,
	}); err != nil {
		return nil, fmt.Errorf("failed to link accounts: %v", err)
	}
	if err := s.userRepo.UpdateUser(ctx, creator.ID, map[string]interface{}{
		"partner_id": user.ID,
		"pair_id":    pairID,
	}); err != nil {
		return nil, fmt.Errorf("failed to link accounts: %v", err)
	}

	if err := s.repo.MarkUsed(ctx, code, user.ID); err != nil {
		logger.Log.WithError(err).WithField("code", code).Warn("Failed to mark invite as used")
	}

	if creator.PushToken != "" {
		body := fmt.Sprintf("%s accepted your invite. You're now connected!", user.DisplayName)
		if err := s.notifier.Push(creator.PushToken, "💞 You're Paired", body, map[string]interface{}{
			"type": "paired",
		}); err != nil {
			logger.Log.WithError(err).WithField("user_id", creator.ID).Warn("Failed to send pairing notification")
		}
	}

	s.hub.NotifyPair(user.ID, creator.ID, StreamEvent{
		Type:   "pair.linked",
		PairID: pairID,
	})

	user.PartnerID = creator.ID
	user.PairID = pairID
	return user, nil
}

func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
