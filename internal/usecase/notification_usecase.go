package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"founder-match/internal/domain/notification"
	"founder-match/internal/metrics"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notificationListLimit = 50

// RealtimePusher delivers a payload to every live connection of a user.
// It must not block.
type RealtimePusher interface {
	PushToUser(userID uuid.UUID, payload any) bool
}

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationService stores notifications and pushes them to connected
// clients. It is the notification.Notifier used by the match lifecycle.
type NotificationService struct {
	repo   repository.NotificationRepository
	push   RealtimePusher
	logger *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, push RealtimePusher, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, push: push, logger: logger.OrNop(log)}
}

var _ notification.Notifier = (*NotificationService)(nil)

func (s *NotificationService) Notify(ctx context.Context, n notification.Notification) error {
	if n.UserID == uuid.Nil || strings.TrimSpace(n.Title) == "" {
		return ErrInvalidInput
	}
	saved, err := s.repo.Create(ctx, n)
	metrics.NotificationsTotal.WithLabelValues("store", metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if s.push != nil {
		delivered := s.push.PushToUser(saved.UserID, saved)
		result := metrics.ResultOK
		if !delivered {
			result = "offline"
		}
		metrics.NotificationsTotal.WithLabelValues("websocket", result).Inc()
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	items, err := s.repo.ListForUser(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (notification.Notification, error) {
	n, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("mark read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return n, nil
}
