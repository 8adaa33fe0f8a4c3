package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/pairing"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/email"
	jwtutil "github.com/syncapp/sync-backend/pkg/jwt"
	"github.com/syncapp/sync-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles accounts: signup, login, verification, password reset,
// profile and device-token updates, and the pair-id repair on load.
type UserService struct {
	repo        *repository.UserRepository
	jwtSecret   string
	tokenExpiry int
}

func NewUserService(repo *repository.UserRepository, jwtSecret string, tokenExpiry int) *UserService {
	return &UserService{
		repo:        repo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// AuthResult is the login/register response.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account and sends the verification email.
func (s *UserService) Register(ctx context.Context, emailAddr, displayName, password string) (*AuthResult, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if existing, _ := s.repo.GetUserByEmail(ctx, emailAddr); existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          emailAddr,
		DisplayName:    displayName,
		HashedPassword: string(hashed),
		VerifyToken:    uuid.NewString(),
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	// Verification delivery is best-effort; the account works without it.
	go func(to, token string) {
		if err := email.SendVerificationEmail(to, token); err != nil {
			logger.Log.WithError(err).WithField("email", to).Warn("Failed to send verification email")
		}
	}(created.Email, created.VerifyToken)

	token, err := jwtutil.GenerateToken(created.ID, created.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %v", err)
	}
	return &AuthResult{Token: token, User: created}, nil
}

// Login verifies credentials and issues a JWT.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %v", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyEmail confirms an account from its verification token.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid verification token")
	}

	return s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"is_verified":  true,
		"verify_token": "",
	})
}

// RequestPasswordReset issues a reset token and mails it. Always succeeds
// from the caller's point of view so the endpoint can't confirm whether an
// email is registered.
func (s *UserService) RequestPasswordReset(ctx context.Context, emailAddr string) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return
	}

	token := uuid.NewString()
	if err := s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{"reset_token": token}); err != nil {
		return
	}

	go func(to, resetToken string) {
		if err := email.SendPasswordResetEmail(to, resetToken); err != nil {
			logger.Log.WithError(err).WithField("email", to).Warn("Failed to send password reset email")
		}
	}(user.Email, token)
}

// ResetPassword sets a new password from a valid reset token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	return s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"hashed_password": string(hashed),
		"reset_token":     "",
	})
}

// GetProfile returns the caller's account with the pair id repaired, plus
// the partner's public projection when paired.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, *models.PublicUser, error) {
	user, err := s.EnsurePairID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if user.PartnerID == "" {
		return user, nil, nil
	}
	partner, err := s.repo.GetUserByID(ctx, user.PartnerID)
	if err != nil {
		logger.Log.WithError(err).WithField("partner_id", user.PartnerID).Warn("Failed to fetch partner profile")
		return user, nil, nil
	}
	public := partner.Public()
	return user, &public, nil
}

// UpdateProfile edits display name and photo.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, displayName, photoURL string) error {
	update := map[string]interface{}{}
	if displayName != "" {
		update["display_name"] = displayName
	}
	if photoURL != "" {
		update["photo_url"] = photoURL
	}
	if len(update) == 0 {
		return nil
	}
	return s.repo.UpdateUser(ctx, userID, update)
}

// UpdatePushToken stores the device's APNs token.
func (s *UserService) UpdatePushToken(ctx context.Context, userID, token string) error {
	return s.repo.UpdateUser(ctx, userID, map[string]interface{}{"push_token": token})
}

// UpdateCalendarToken stores the user's calendar bridge access token.
func (s *UserService) UpdateCalendarToken(ctx context.Context, userID, token string) error {
	return s.repo.UpdateUser(ctx, userID, map[string]interface{}{"calendar_token": token})
}

// EnsurePairID loads a user and repairs a missing pair id. A stored pair id
// always wins; only when the user has a partner but no pair id is the
// canonical id derived and written back to both accounts. A failure writing
// the partner's side is logged and does not fail the load.
func (s *UserService) EnsurePairID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	if user.PairID != "" || user.PartnerID == "" {
		return user, nil
	}

	pairID := pairing.DeriveID(user.ID, user.PartnerID)
	if err := s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{"pair_id": pairID}); err != nil {
		return nil, fmt.Errorf("failed to repair pair id: %v", err)
	}
	user.PairID = pairID

	if err := s.repo.UpdateUser(ctx, user.PartnerID, map[string]interface{}{"pair_id": pairID}); err != nil {
		logger.Log.WithError(err).WithField("partner_id", user.PartnerID).Warn("Failed to repair partner's pair id")
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"pair_id": pairID,
	}).Info("Pair id repaired")
	return user, nil
}
