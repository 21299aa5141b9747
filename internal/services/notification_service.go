package services

import (
	"context"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"github.com/anonto42/simple-twitter/backend/pkg/logger"
	"go.uber.org/zap"
)

const defaultNotificationLimit = 50

// Notifier records activity for another user. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, kind string, actorID, recipientID, targetID uint)
}

// NotificationService stores notifications in MongoDB. A nil repository turns
// it into a no-op.
type NotificationService struct {
	notificationRepository repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepository: notificationRepo}
}

func (s *NotificationService) Enabled() bool {
	return s != nil && s.notificationRepository != nil
}

func (s *NotificationService) Notify(ctx context.Context, kind string, actorID, recipientID, targetID uint) {
	if !s.Enabled() || actorID == recipientID {
		return
	}

	notification := &models.Notification{
		Type:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		TargetID:    targetID,
	}
	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		logger.L.Warn("create notification failed",
			zap.String("type", kind),
			zap.Uint("actor_id", actorID),
			zap.Uint("recipient_id", recipientID),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) List(ctx context.Context, recipientID uint, limit int64) ([]models.Notification, error) {
	if !s.Enabled() {
		return []models.Notification{}, nil
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	notifications, err := s.notificationRepository.GetByRecipientID(ctx, recipientID, limit)
	if err != nil {
		return nil, storeError("list notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	n, err := s.notificationRepository.MarkAllAsRead(ctx, recipientID)
	if err != nil {
		return 0, storeError("mark notifications read", err)
	}
	return n, nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, uint, uint, uint) {}
