package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

const profileRecentLimit = 5

// UserService serves member profiles with their recent work.
type UserService struct {
	users    ports.UserRepository
	blogs    ports.BlogRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, blogs ports.BlogRepository, projects ports.ProjectRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, blogs: blogs, projects: projects, log: log}
}

// PublicProfile returns the outward view of a member. The email address is
// included only when the member opted in.
func (s *UserService) PublicProfile(ctx context.Context, username string) (*ports.UserProfile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsEmailPublic {
		user.Email = ""
	}

	blogs, err := s.blogs.FindByAuthor(ctx, user.ID, profileRecentLimit)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("load profile blogs")
		blogs = nil
	}
	published := make([]domain.Blog, 0, len(blogs))
	for _, b := range blogs {
		if b.Published {
			published = append(published, b)
		}
	}

	projects, err := s.projects.FindByAuthorName(ctx, user.Name, profileRecentLimit)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("load profile projects")
		projects = nil
	}

	return &ports.UserProfile{User: user, Blogs: published, Projects: projects}, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyProfileUpdate(user, upd)
	return s.users.Update(ctx, user)
}
