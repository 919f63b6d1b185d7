package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// CommunityService manages community membership. Members are never
// deleted; leaving deactivates and rejoining reactivates.
type CommunityService struct {
	members    ports.CommunityRepository
	render     ports.EmailRenderer
	dispatcher ports.OutboundDispatcher
	groupLink  string
	log        zerolog.Logger
}

func NewCommunityService(
	members ports.CommunityRepository,
	render ports.EmailRenderer,
	dispatcher ports.OutboundDispatcher,
	groupLink string,
	log zerolog.Logger,
) *CommunityService {
	return &CommunityService{members: members, render: render, dispatcher: dispatcher, groupLink: groupLink, log: log}
}

// Join adds a member. The second return value reports whether an inactive
// membership was reactivated rather than created.
func (s *CommunityService) Join(ctx context.Context, name, email, phone string, interests []string) (*domain.CommunityMember, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.members.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return nil, false, domain.ErrMemberExists
	case err == nil:
		existing.Name = name
		existing.Phone = phone
		existing.Interests = interests
		existing.IsActive = true
		existing.JoinedAt = time.Now().UTC()
		updated, err := s.members.Update(ctx, existing)
		if err != nil {
			return nil, false, err
		}
		s.enqueueWelcome(updated)
		return updated, true, nil
	case errors.Is(err, domain.ErrMemberNotFound):
		// fall through to create
	default:
		return nil, false, err
	}

	created, err := s.members.Create(ctx, &domain.CommunityMember{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Interests: interests,
		IsActive:  true,
		JoinedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, false, err
	}
	s.enqueueWelcome(created)
	return created, false, nil
}

func (s *CommunityService) Members(ctx context.Context) ([]domain.CommunityMember, error) {
	return s.members.ListActive(ctx)
}

func (s *CommunityService) enqueueWelcome(member *domain.CommunityMember) {
	msg, err := s.render.CommunityInvite(member.Email, member.Name, s.groupLink)
	if err != nil {
		s.log.Error().Err(err).Str("email", member.Email).Msg("render welcome email")
		return
	}
	s.dispatcher.Enqueue(ports.Outbound{Recipient: member.Email, Email: msg})
}
