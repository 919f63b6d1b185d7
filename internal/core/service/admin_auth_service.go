package service

import (
	"context"
	"errors"
	"strings"

	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// AdminAuthService authenticates back-office admins against their own
// collection and signing secret.
type AdminAuthService struct {
	admins ports.AdminRepository
	tokens *auth.TokenManager
}

func NewAdminAuthService(admins ports.AdminRepository, tokens *auth.TokenManager) *AdminAuthService {
	return &AdminAuthService{admins: admins, tokens: tokens}
}

// Login accepts a username or an email as identifier.
func (s *AdminAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Admin, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(admin.ID)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
