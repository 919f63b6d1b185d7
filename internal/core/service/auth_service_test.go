package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

func newAuthService(repo *stubUserRepo, mailer *stubMailer, dispatcher *stubDispatcher) *AuthService {
	return NewAuthService(
		repo,
		auth.NewTokenManager("user-secret", time.Hour),
		mailer,
		stubRenderer{},
		dispatcher,
		"http://localhost:8080",
		zerolog.Nop(),
	)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	dispatcher := &stubDispatcher{}
	svc := newAuthService(repo, &stubMailer{}, dispatcher)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "Alice@Example.com", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %s", user.Email)
	}
	if user.Username != "alice" {
		t.Fatalf("expected username derived from email, got %s", user.Username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Avatar == "" {
		t.Fatalf("expected generated avatar URL")
	}
	if user.IsVerified {
		t.Fatalf("new accounts must start unverified")
	}

	outs := dispatcher.all()
	if len(outs) != 1 || outs[0].Email == nil {
		t.Fatalf("expected one verification email enqueued, got %+v", outs)
	}
	if outs[0].Email.Template != "verification" {
		t.Fatalf("unexpected template: %s", outs[0].Email.Template)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailer{}, &stubDispatcher{})

	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_UsernameCollision(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailer{}, &stubDispatcher{})

	_, first, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@one.example", Password: "pass",
	})
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, second, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@two.example", Password: "pass",
	})
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if first.Username == second.Username {
		t.Fatalf("expected distinct usernames, both %q", first.Username)
	}
	if !strings.HasPrefix(second.Username, "carol-") {
		t.Fatalf("expected suffixed username, got %q", second.Username)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailer{}, &stubDispatcher{})

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Dave", Email: "dave@example.com", Password: "goodpass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dave@example.com", "goodpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected token and user")
	}

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	// Unknown accounts are indistinguishable from wrong passwords.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	repo := newStubUserRepo()
	dispatcher := &stubDispatcher{}
	svc := newAuthService(repo, &stubMailer{}, dispatcher)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// The raw token travels in the emailed link; the stub renderer puts
	// the link in the body.
	link := dispatcher.all()[0].Email.HTML
	raw := link[strings.LastIndex(link, "/")+1:]

	if err := svc.VerifyEmail(context.Background(), raw); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), user.ID)
	if !stored.IsVerified {
		t.Fatalf("expected user verified")
	}
	if stored.VerificationToken != "" {
		t.Fatalf("expected verification token cleared")
	}

	if err := svc.VerifyEmail(context.Background(), "bogus"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken for bad token, got %v", err)
	}
}

func TestAuthService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailer{}, &stubDispatcher{})

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Frank", Email: "frank@example.com", Password: "oldpass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.UpdatePassword(context.Background(), user.ID, "wrong", "newpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.UpdatePassword(context.Background(), user.ID, "oldpass", "newpass"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthService_ForgotPassword_ResetFlow(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{}
	svc := newAuthService(repo, mailer, &stubDispatcher{})

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "oldpass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "grace@example.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one reset email, got %d", len(mailer.sent))
	}
	link := mailer.sent[0].HTML
	raw := link[strings.LastIndex(link, "/")+1:]

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.ResetToken == raw {
		t.Fatalf("reset token must be stored hashed")
	}

	token, _, err := svc.ResetPassword(context.Background(), raw, "newpass")
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected fresh session token")
	}
	if _, _, err := svc.Login(context.Background(), "grace@example.com", "newpass"); err != nil {
		t.Fatalf("login with reset password failed: %v", err)
	}

	// The token is single use.
	if _, _, err := svc.ResetPassword(context.Background(), raw, "again"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken on reuse, got %v", err)
	}
}

func TestAuthService_ForgotPassword_SendFailureClearsToken(t *testing.T) {
	repo := newStubUserRepo()
	mailer := &stubMailer{fail: errStubSendFailed}
	svc := newAuthService(repo, mailer, &stubDispatcher{})

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Heidi", Email: "heidi@example.com", Password: "pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "heidi@example.com"); err == nil {
		t.Fatalf("expected error when the reset email cannot be sent")
	}
	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.ResetToken != "" {
		t.Fatalf("expected reset token cleared after failed send")
	}
}
