package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// EventService manages events and their registrations.
type EventService struct {
	events     ports.EventRepository
	regs       ports.RegistrationRepository
	render     ports.EmailRenderer
	dispatcher ports.OutboundDispatcher
	log        zerolog.Logger
}

func NewEventService(
	events ports.EventRepository,
	regs ports.RegistrationRepository,
	render ports.EmailRenderer,
	dispatcher ports.OutboundDispatcher,
	log zerolog.Logger,
) *EventService {
	return &EventService{events: events, regs: regs, render: render, dispatcher: dispatcher, log: log}
}

func (s *EventService) List(ctx context.Context, upcomingOnly bool) ([]domain.Event, error) {
	return s.events.List(ctx, upcomingOnly)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	event.CreatedAt = time.Now().UTC()
	return s.events.Create(ctx, event)
}

func (s *EventService) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	return s.events.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

// Register signs an attendee up for an event. The (event, email) pair is
// unique; the confirmation email carries the ticket reference and rides
// the fan-out queue so a mail outage never loses the registration.
func (s *EventService) Register(ctx context.Context, eventID string, in ports.RegistrationInput) (*domain.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	reg := &domain.Registration{
		EventID:   event.ID,
		UserID:    in.UserID,
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		TicketID:  newTicketID(event.ID),
		Status:    domain.RegistrationConfirmed,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.regs.Create(ctx, reg)
	if err != nil {
		return nil, err
	}

	s.enqueueTicket(created, event)
	return created, nil
}

func (s *EventService) Registrations(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.regs.ListByEvent(ctx, eventID, false)
}

func (s *EventService) RegistrationStatus(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	return s.regs.FindByEventAndEmail(ctx, eventID, strings.ToLower(strings.TrimSpace(email)))
}

func (s *EventService) ResendConfirmation(ctx context.Context, eventID, email string) error {
	reg, err := s.regs.FindByEventAndEmail(ctx, eventID, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	s.enqueueTicket(reg, event)
	return nil
}

// BroadcastGroupLink fans a group invitation out to every non-cancelled
// registrant and returns how many emails were enqueued.
func (s *EventService) BroadcastGroupLink(ctx context.Context, eventID, groupLink, subject, message string) (int, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	regs, err := s.regs.ListByEvent(ctx, eventID, true)
	if err != nil {
		return 0, err
	}

	outs := make([]ports.Outbound, 0, len(regs))
	for _, reg := range regs {
		msg, err := s.render.GroupLink(reg.Email, reg.Name, event.Title, groupLink, subject, message)
		if err != nil {
			s.log.Error().Err(err).Str("email", reg.Email).Msg("render group link email")
			continue
		}
		outs = append(outs, ports.Outbound{Recipient: reg.Email, Email: msg})
	}
	s.dispatcher.EnqueueBatch(outs)
	return len(outs), nil
}

func (s *EventService) enqueueTicket(reg *domain.Registration, event *domain.Event) {
	msg, err := s.render.EventTicket(reg, event)
	if err != nil {
		s.log.Error().Err(err).Str("email", reg.Email).Msg("render ticket email")
		return
	}
	s.dispatcher.Enqueue(ports.Outbound{Recipient: reg.Email, Email: msg})
}

// newTicketID builds the human-facing ticket reference: a BV prefix, a
// fragment of the event id, and a random uuid fragment.
func newTicketID(eventID string) string {
	ev := eventID
	if len(ev) > 6 {
		ev = ev[len(ev)-6:]
	}
	return strings.ToUpper("BV-" + ev + "-" + uuid.NewString()[:8])
}
