package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

const verificationTTL = 24 * time.Hour
const resetTTL = 10 * time.Minute

// AuthService implements user registration, login and account recovery.
type AuthService struct {
	users      ports.UserRepository
	tokens     *auth.TokenManager
	mailer     ports.Mailer
	render     ports.EmailRenderer
	dispatcher ports.OutboundDispatcher
	baseURL    string
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens *auth.TokenManager,
	mailer ports.Mailer,
	render ports.EmailRenderer,
	dispatcher ports.OutboundDispatcher,
	baseURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		render:     render,
		dispatcher: dispatcher,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	rawToken, digest, err := auth.NewOneTimeToken()
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:               in.Name,
		Username:           s.usernameFor(ctx, email),
		Email:              email,
		PasswordHash:       hash,
		Role:               domain.RoleUser,
		Avatar:             avatarURL(in.Name),
		VerificationToken:  digest,
		VerificationExpire: now.Add(verificationTTL),
		CreatedAt:          now,
		LastActive:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	// Verification email rides the fan-out queue; a delivery failure must
	// not fail the signup.
	if msg, err := s.render.Verification(created.Email, created.Name, s.verifyLink(rawToken)); err != nil {
		s.log.Error().Err(err).Msg("render verification email")
	} else {
		s.dispatcher.Enqueue(ports.Outbound{Recipient: created.Email, Email: msg})
	}

	token, err := s.tokens.Sign(created.ID)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	user.LastActive = time.Now().UTC()
	if _, err := s.users.Update(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("update last active")
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerificationToken(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationExpire = time.Time{}
	_, err = s.users.Update(ctx, user)
	return err
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID string, upd ports.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyProfileUpdate(user, upd)
	return s.users.Update(ctx, user)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return s.tokens.Sign(user.ID)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}

	rawToken, digest, err := auth.NewOneTimeToken()
	if err != nil {
		return err
	}
	user.ResetToken = digest
	user.ResetExpire = time.Now().UTC().Add(resetTTL)
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	msg, err := s.render.PasswordReset(user.Email, user.Name, s.resetLink(rawToken))
	if err == nil {
		err = s.mailer.Send(ctx, *msg)
	}
	if err != nil {
		// The reset email is the whole point of this call, so a failed
		// send invalidates the token and surfaces the error.
		user.ResetToken = ""
		user.ResetExpire = time.Time{}
		if _, uerr := s.users.Update(ctx, user); uerr != nil {
			s.log.Error().Err(uerr).Str("user_id", user.ID).Msg("clear reset token")
		}
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (string, *domain.User, error) {
	user, err := s.users.FindByResetToken(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidResetToken
		}
		return "", nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, err
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetExpire = time.Time{}
	if _, err := s.users.Update(ctx, user); err != nil {
		return "", nil, err
	}

	signed, err := s.tokens.Sign(user.ID)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// usernameFor derives a username from the email local part, appending a
// short random suffix when the name is taken.
func (s *AuthService) usernameFor(ctx context.Context, email string) string {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "member"
	}

	if _, err := s.users.FindByUsername(ctx, base); errors.Is(err, domain.ErrUserNotFound) {
		return base
	}
	return base + "-" + uuid.NewString()[:8]
}

func (s *AuthService) verifyLink(token string) string {
	return s.baseURL + "/api/auth/verify/" + token
}

func (s *AuthService) resetLink(token string) string {
	return s.baseURL + "/reset-password/" + token
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
}

func applyProfileUpdate(user *domain.User, upd ports.ProfileUpdate) {
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Website != nil {
		user.Website = *upd.Website
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.IsEmailPublic != nil {
		user.IsEmailPublic = *upd.IsEmailPublic
	}
	if upd.SocialLinks != nil {
		user.SocialLinks = *upd.SocialLinks
	}
}
