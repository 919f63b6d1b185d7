package ports

import (
	"context"

	"github.com/byteverse/platform-api/internal/core/domain"
)

// UserRepository persists platform users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, tokenHash string) (*domain.User, error)
	FindByResetToken(ctx context.Context, tokenHash string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AdminRepository persists back-office admins.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.Admin, error)
}

// BlogFilter narrows blog listings. Zero values mean "no filter".
type BlogFilter struct {
	Category      string
	Tag           string
	AuthorID      string
	Search        string
	PublishedOnly bool
	Page          int
	Limit         int
}

// BlogRepository persists blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	FindByAuthor(ctx context.Context, authorID string, limit int) ([]domain.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]domain.Blog, int64, error)
	Update(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// CommentRepository persists blog comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]domain.Comment, error)
	Delete(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}

// EventRepository persists events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, upcomingOnly bool) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationRepository persists event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	FindByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string, excludeCancelled bool) ([]domain.Registration, error)
}

// CommunityRepository persists community members.
type CommunityRepository interface {
	Create(ctx context.Context, member *domain.CommunityMember) (*domain.CommunityMember, error)
	FindByEmail(ctx context.Context, email string) (*domain.CommunityMember, error)
	ListActive(ctx context.Context) ([]domain.CommunityMember, error)
	Update(ctx context.Context, member *domain.CommunityMember) (*domain.CommunityMember, error)
}

// ProjectRepository persists the public showcase.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByAuthorName(ctx context.Context, name string, limit int) ([]domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

// SubmissionCounts aggregates pending-project review statistics.
type SubmissionCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// PendingProjectRepository persists project submissions under review.
type PendingProjectRepository interface {
	Create(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error)
	FindByID(ctx context.Context, id string) (*domain.PendingProject, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.PendingProject, error)
	Update(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error)
	CountByStatus(ctx context.Context) (SubmissionCounts, error)
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, page, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
