package service

import (
	"context"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// NotificationService serves per-user notifications.
type NotificationService struct {
	notifications ports.NotificationRepository
}

func NewNotificationService(notifications ports.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, recipientID string, page, limit int) (*ports.NotificationPage, error) {
	list, err := s.notifications.ListByRecipient(ctx, recipientID, page, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &ports.NotificationPage{
		Notifications: list,
		Count:         len(list),
		UnreadCount:   unread,
	}, nil
}

// MarkRead marks one notification read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != recipientID {
		return nil, domain.ErrForbidden
	}
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.notifications.MarkAllRead(ctx, recipientID)
}
