package services

import (
	"context"
	"fmt"

	"github.com/syncapp/sync-backend/internal/models"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/pkg/logger"
)

// NotificationService persists in-app notifications alongside their push
// delivery so the user can review history for a week.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	notifier notify.Notifier
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, notifier notify.Notifier) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Notify persists a notification and pushes it to the user's device. The
// push is best-effort; the history entry is what must not get lost.
func (s *NotificationService) Notify(ctx context.Context, userID, notifType, title, message, targetID string) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		TargetID: targetID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return fmt.Errorf("failed to persist notification: %v", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil || user.PushToken == "" {
		return nil
	}
	if err := s.notifier.Push(user.PushToken, title, message, map[string]interface{}{
		"type":      notifType,
		"target_id": targetID,
	}); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to push notification")
	}
	return nil
}

// GetNotifications lists the user's unexpired notifications, newest first.
func (s *NotificationService) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkAsRead flags one notification as read. Ownership is checked so a user
// can only touch their own entries.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	notifications, err := s.repo.GetUserNotifications(ctx, userID)
	if err != nil {
		return err
	}
	for _, notif := range notifications {
		if notif.ID == notificationID {
			return s.repo.MarkAsRead(ctx, notificationID)
		}
	}
	return fmt.Errorf("notification not found")
}

// DeleteNotification removes one of the user's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	notifications, err := s.repo.GetUserNotifications(ctx, userID)
	if err != nil {
		return err
	}
	for _, notif := range notifications {
		if notif.ID == notificationID {
			return s.repo.DeleteNotification(ctx, notificationID)
		}
	}
	return fmt.Errorf("notification not found")
}

// PurgeExpired removes notifications past their expiry. Called by the daily
// sweep.
func (s *NotificationService) PurgeExpired(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
