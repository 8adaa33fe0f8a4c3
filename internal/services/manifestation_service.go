package services

import (
	"context"
	"fmt"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/repository"
)

// ManifestationService manages the pair's shared and individual goals.
type ManifestationService struct {
	repo     *repository.ManifestationRepository
	userRepo *repository.UserRepository
	hub      *StreamHub
}

func NewManifestationService(repo *repository.ManifestationRepository, userRepo *repository.UserRepository, hub *StreamHub) *ManifestationService {
	return &ManifestationService{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
	}
}

// CreateManifestation validates and stores a new goal.
func (s *ManifestationService) CreateManifestation(ctx context.Context, userID string, m *models.Manifestation) (*models.Manifestation, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return nil, fmt.Errorf("you must be paired with a partner to create a manifestation")
	}

	if m.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if m.Type != models.ManifestationShared && m.Type != models.ManifestationIndividual {
		return nil, fmt.Errorf("type must be shared or individual")
	}
	if m.Category == "" {
		m.Category = "other"
	}
	if !models.ManifestationCategories[m.Category] {
		return nil, fmt.Errorf("invalid category: %s", m.Category)
	}

	m.PairID = user.PairID
	m.CreatedBy = user.ID
	m.Progress = 0
	m.CompletedMilestones = nil

	created, err := s.repo.CreateManifestation(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifestation: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "manifestations.changed",
		PairID:   user.PairID,
		TargetID: created.ID,
	})
	return created, nil
}

// GetManifestations lists the pair's goals, optionally filtered by type.
func (s *ManifestationService) GetManifestations(ctx context.Context, userID, manifestationType string) ([]models.Manifestation, error) {
	if manifestationType != "" && manifestationType != models.ManifestationShared && manifestationType != models.ManifestationIndividual {
		return nil, fmt.Errorf("type must be shared or individual")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	if user.PairID == "" {
		return []models.Manifestation{}, nil
	}
	return s.repo.GetManifestationsByPair(ctx, user.PairID, manifestationType)
}

// SetProgress moves a goal to one of the coarse progress steps.
func (s *ManifestationService) SetProgress(ctx context.Context, userID, manifestationID string, progress int) (*models.Manifestation, error) {
	if !models.ManifestationProgressSteps[progress] {
		return nil, fmt.Errorf("progress must be one of 0, 25, 50, 75, 100")
	}

	user, m, err := s.authorize(ctx, userID, manifestationID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateManifestation(ctx, manifestationID, map[string]interface{}{"progress": progress}); err != nil {
		return nil, fmt.Errorf("failed to update progress: %v", err)
	}
	m.Progress = progress

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "manifestations.changed",
		PairID:   m.PairID,
		TargetID: m.ID,
	})
	return m, nil
}

// ToggleMilestone flips a milestone's completion state. The milestone must
// be one the goal actually declares.
func (s *ManifestationService) ToggleMilestone(ctx context.Context, userID, manifestationID, milestone string) (*models.Manifestation, error) {
	user, m, err := s.authorize(ctx, userID, manifestationID)
	if err != nil {
		return nil, err
	}

	declared := false
	for _, candidate := range m.Milestones {
		if candidate == milestone {
			declared = true
			break
		}
	}
	if !declared {
		return nil, fmt.Errorf("unknown milestone: %s", milestone)
	}

	completed := make([]string, 0, len(m.CompletedMilestones)+1)
	found := false
	for _, done := range m.CompletedMilestones {
		if done == milestone {
			found = true
			continue
		}
		completed = append(completed, done)
	}
	if !found {
		completed = append(completed, milestone)
	}

	if err := s.repo.UpdateManifestation(ctx, manifestationID, map[string]interface{}{"completed_milestones": completed}); err != nil {
		return nil, fmt.Errorf("failed to toggle milestone: %v", err)
	}
	m.CompletedMilestones = completed

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "manifestations.changed",
		PairID:   m.PairID,
		TargetID: m.ID,
	})
	return m, nil
}

// UpdateManifestation applies a partial edit to title, description, category
// or target date.
func (s *ManifestationService) UpdateManifestation(ctx context.Context, userID, manifestationID string, update map[string]interface{}) (*models.Manifestation, error) {
	user, m, err := s.authorize(ctx, userID, manifestationID)
	if err != nil {
		return nil, err
	}

	if title, ok := update["title"].(string); ok && title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if category, ok := update["category"].(string); ok && !models.ManifestationCategories[category] {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	if err := s.repo.UpdateManifestation(ctx, manifestationID, update); err != nil {
		return nil, fmt.Errorf("failed to update manifestation: %v", err)
	}

	updated, err := s.repo.GetManifestationByID(ctx, manifestationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated manifestation: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "manifestations.changed",
		PairID:   m.PairID,
		TargetID: m.ID,
	})
	return updated, nil
}

// DeleteManifestation removes a goal.
func (s *ManifestationService) DeleteManifestation(ctx context.Context, userID, manifestationID string) error {
	user, m, err := s.authorize(ctx, userID, manifestationID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteManifestation(ctx, manifestationID); err != nil {
		return fmt.Errorf("failed to delete manifestation: %v", err)
	}

	s.hub.NotifyPair(user.ID, user.PartnerID, StreamEvent{
		Type:     "manifestations.changed",
		PairID:   m.PairID,
		TargetID: m.ID,
	})
	return nil
}

func (s *ManifestationService) authorize(ctx context.Context, userID, manifestationID string) (*models.User, *models.Manifestation, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	m, err := s.repo.GetManifestationByID(ctx, manifestationID)
	if err != nil {
		return nil, nil, fmt.Errorf("manifestation not found: %v", err)
	}
	if m.PairID == "" || m.PairID != user.PairID {
		return nil, nil, fmt.Errorf("manifestation does not belong to your pair")
	}
	return user, m, nil
}
