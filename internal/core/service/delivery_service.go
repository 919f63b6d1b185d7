package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/api/metrics"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// DeliveryService processes asynchronous fan-out work: sending an email,
// persisting an in-app notification, or both for one recipient.
type DeliveryService struct {
	mailer        ports.Mailer
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewDeliveryService(mailer ports.Mailer, notifications ports.NotificationRepository, log zerolog.Logger) *DeliveryService {
	return &DeliveryService{mailer: mailer, notifications: notifications, log: log}
}

func (s *DeliveryService) Process(ctx context.Context, out ports.Outbound) error {
	var firstErr error

	if out.Email != nil {
		if err := s.mailer.Send(ctx, *out.Email); err != nil {
			metrics.EmailsSentTotal.WithLabelValues(out.Email.Template, "error").Inc()
			s.log.Error().Err(err).
				Str("to", out.Email.To).
				Str("template", out.Email.Template).
				Msg("email delivery failed")
			firstErr = fmt.Errorf("email to %s: %w", out.Email.To, err)
		} else {
			metrics.EmailsSentTotal.WithLabelValues(out.Email.Template, "ok").Inc()
		}
	}

	if out.Notification != nil {
		n := out.Notification
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now().UTC()
		}
		if _, err := s.notifications.Create(ctx, n); err != nil {
			s.log.Error().Err(err).
				Str("recipient_id", n.RecipientID).
				Str("type", string(n.Type)).
				Msg("notification persist failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("notification for %s: %w", n.RecipientID, err)
			}
		} else {
			metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Type)).Inc()
		}
	}

	return firstErr
}
