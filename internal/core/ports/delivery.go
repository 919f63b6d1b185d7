package ports

import (
	"context"

	"github.com/byteverse/platform-api/internal/core/domain"
)

// EmailMessage is a rendered email ready for transport.
type EmailMessage struct {
	To       string
	Subject  string
	HTML     string
	Template string // template name, for logging and metrics
}

// Mailer delivers rendered emails.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailRenderer renders the transactional email templates.
type EmailRenderer interface {
	Verification(to, name, link string) (*EmailMessage, error)
	PasswordReset(to, name, link string) (*EmailMessage, error)
	EventTicket(reg *domain.Registration, event *domain.Event) (*EmailMessage, error)
	GroupLink(to, name, eventTitle, link, subject, message string) (*EmailMessage, error)
	CommunityInvite(to, name, groupLink string) (*EmailMessage, error)
	ProjectApproved(to, name, title, feedback string) (*EmailMessage, error)
	ProjectRejected(to, name, title, feedback string) (*EmailMessage, error)
	NewSubmission(to string, p *domain.PendingProject) (*EmailMessage, error)
}

// Outbound is one unit of asynchronous fan-out work: an email, an in-app
// notification, or both. Recipient is the shard key, so deliveries to the
// same recipient stay ordered.
type Outbound struct {
	Recipient    string
	Email        *EmailMessage
	Notification *domain.Notification
}

// DeliveryService processes outbound fan-out work.
type DeliveryService interface {
	Process(ctx context.Context, out Outbound) error
}

// OutboundDispatcher enqueues fan-out work for background delivery.
type OutboundDispatcher interface {
	Enqueue(out Outbound)
	EnqueueBatch(outs []Outbound)
}
