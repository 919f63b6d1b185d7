package ports

import (
	"context"

	"github.com/byteverse/platform-api/internal/core/domain"
)

// RegisterInput carries new-account details.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileUpdate carries optional profile changes. Nil fields are ignored.
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	Website       *string
	Avatar        *string
	IsEmailPublic *bool
	SocialLinks   *domain.SocialLinks
}

// AuthService implements user registration, login and account recovery.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	UpdateDetails(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, current, next string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (string, *domain.User, error)
}

// AdminAuthService authenticates back-office admins.
type AdminAuthService interface {
	Login(ctx context.Context, identifier, password string) (string, *domain.Admin, error)
}

// UserProfile is the public view of a member plus their recent work.
type UserProfile struct {
	User     *domain.User     `json:"user"`
	Blogs    []domain.Blog    `json:"blogs"`
	Projects []domain.Project `json:"projects"`
}

// UserService serves member profiles.
type UserService interface {
	PublicProfile(ctx context.Context, username string) (*UserProfile, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error)
}

// BlogInput carries author-editable blog fields.
type BlogInput struct {
	Title      string
	Content    string
	CoverImage string
	Excerpt    string
	Categories []string
	Tags       []string
	Published  bool
	Featured   bool
}

// BlogPage is a paginated blog listing.
type BlogPage struct {
	Blogs []domain.Blog `json:"data"`
	Count int           `json:"count"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// BlogService implements the content workflow.
type BlogService interface {
	List(ctx context.Context, filter BlogFilter) (*BlogPage, error)
	Get(ctx context.Context, idOrSlug, viewerID string, viewerRole domain.Role) (*domain.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Blog, error)
	Create(ctx context.Context, author *domain.User, in BlogInput) (*domain.Blog, error)
	Update(ctx context.Context, id, actorID string, actorRole domain.Role, in BlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, id, actorID string, actorRole domain.Role) error
	ToggleLike(ctx context.Context, id string, actor *domain.User) (*domain.Blog, error)
}

// CommentService manages blog comments.
type CommentService interface {
	List(ctx context.Context, blogID string) ([]domain.Comment, error)
	Add(ctx context.Context, blogID, userID, author, content, parentID string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, actorID string, actorRole domain.Role) error
	Like(ctx context.Context, commentID string) error
}

// RegistrationInput carries attendee signup details.
type RegistrationInput struct {
	Name   string
	Email  string
	Phone  string
	UserID string
}

// EventService manages events and their registrations.
type EventService interface {
	List(ctx context.Context, upcomingOnly bool) ([]domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error

	Register(ctx context.Context, eventID string, in RegistrationInput) (*domain.Registration, error)
	Registrations(ctx context.Context, eventID string) ([]domain.Registration, error)
	RegistrationStatus(ctx context.Context, eventID, email string) (*domain.Registration, error)
	ResendConfirmation(ctx context.Context, eventID, email string) error
	BroadcastGroupLink(ctx context.Context, eventID, groupLink, subject, message string) (int, error)
}

// CommunityService manages community membership.
type CommunityService interface {
	Join(ctx context.Context, name, email, phone string, interests []string) (*domain.CommunityMember, bool, error)
	Members(ctx context.Context) ([]domain.CommunityMember, error)
}

// ProjectService manages the showcase and the submission review workflow.
type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Submit(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error)
	Pending(ctx context.Context) ([]domain.PendingProject, error)
	Approve(ctx context.Context, id string) (*domain.Project, error)
	Reject(ctx context.Context, id, feedback string) (*domain.PendingProject, error)
	Statistics(ctx context.Context) (SubmissionCounts, error)
}

// NotificationPage is a paginated notification listing with unread count.
type NotificationPage struct {
	Notifications []domain.Notification `json:"data"`
	Count         int                   `json:"count"`
	UnreadCount   int64                 `json:"unread_count"`
}

// NotificationService serves per-user notifications.
type NotificationService interface {
	List(ctx context.Context, recipientID string, page, limit int) (*NotificationPage, error)
	MarkRead(ctx context.Context, id, recipientID string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) error
}
