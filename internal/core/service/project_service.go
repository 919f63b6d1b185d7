package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// ProjectService manages the public showcase and the submission review
// workflow.
type ProjectService struct {
	projects    ports.ProjectRepository
	pending     ports.PendingProjectRepository
	render      ports.EmailRenderer
	dispatcher  ports.OutboundDispatcher
	adminEmails []string
	log         zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	pending ports.PendingProjectRepository,
	render ports.EmailRenderer,
	dispatcher ports.OutboundDispatcher,
	adminEmails []string,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		pending:     pending,
		render:      render,
		dispatcher:  dispatcher,
		adminEmails: adminEmails,
		log:         log,
	}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Submit stores a new submission and notifies every admin by email,
// fire-and-forget.
func (s *ProjectService) Submit(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error) {
	p.Status = domain.SubmissionPending
	p.AdminFeedback = ""
	p.SubmittedAt = time.Now().UTC()

	created, err := s.pending.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	for _, admin := range s.adminEmails {
		msg, err := s.render.NewSubmission(admin, created)
		if err != nil {
			s.log.Error().Err(err).Str("email", admin).Msg("render submission notice")
			continue
		}
		s.dispatcher.Enqueue(ports.Outbound{Recipient: admin, Email: msg})
	}
	return created, nil
}

func (s *ProjectService) Pending(ctx context.Context) ([]domain.PendingProject, error) {
	return s.pending.ListByStatus(ctx, domain.SubmissionPending)
}

// Approve promotes a pending submission into the public catalog and
// emails the submitter.
func (s *ProjectService) Approve(ctx context.Context, id string) (*domain.Project, error) {
	sub, err := s.pending.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubmissionPending {
		return nil, domain.ErrSubmissionReviewed
	}

	project, err := s.projects.Create(ctx, sub.Approved(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	sub.Status = domain.SubmissionApproved
	if _, err := s.pending.Update(ctx, sub); err != nil {
		return nil, err
	}

	if msg, err := s.render.ProjectApproved(sub.SubmitterEmail, sub.SubmitterName, sub.Title, ""); err != nil {
		s.log.Error().Err(err).Str("email", sub.SubmitterEmail).Msg("render approval email")
	} else {
		s.dispatcher.Enqueue(ports.Outbound{Recipient: sub.SubmitterEmail, Email: msg})
	}
	return project, nil
}

// Reject marks a submission rejected with reviewer feedback and emails
// the submitter.
func (s *ProjectService) Reject(ctx context.Context, id, feedback string) (*domain.PendingProject, error) {
	sub, err := s.pending.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubmissionPending {
		return nil, domain.ErrSubmissionReviewed
	}

	sub.Status = domain.SubmissionRejected
	sub.AdminFeedback = feedback
	updated, err := s.pending.Update(ctx, sub)
	if err != nil {
		return nil, err
	}

	if msg, err := s.render.ProjectRejected(sub.SubmitterEmail, sub.SubmitterName, sub.Title, feedback); err != nil {
		s.log.Error().Err(err).Str("email", sub.SubmitterEmail).Msg("render rejection email")
	} else {
		s.dispatcher.Enqueue(ports.Outbound{Recipient: sub.SubmitterEmail, Email: msg})
	}
	return updated, nil
}

func (s *ProjectService) Statistics(ctx context.Context) (ports.SubmissionCounts, error) {
	return s.pending.CountByStatus(ctx)
}
