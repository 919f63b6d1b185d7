// Package email renders and delivers transactional emails over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/byteverse/platform-api/internal/core/ports"
	"github.com/byteverse/platform-api/internal/infrastructure/config"
)

// SMTPMailer delivers emails through an SMTP relay using go-mail.
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
	log      zerolog.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, log zerolog.Logger) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From, fromName: cfg.FromName, log: log}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	mm := mail.NewMsg()
	if err := mm.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("email from: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("email to: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	m.log.Debug().
		Str("to", msg.To).
		Str("template", msg.Template).
		Msg("email sent")
	return nil
}
