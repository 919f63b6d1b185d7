package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/core/domain"
)

type stubUserStore struct {
	users map[string]*domain.User
	fail  error
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) Create(context.Context, *domain.User) (*domain.User, error) { return nil, nil }
func (s *stubUserStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserStore) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserStore) FindByVerificationToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserStore) FindByResetToken(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUserStore) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

type stubAdminStore struct {
	admins map[string]*domain.Admin
}

func (s *stubAdminStore) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	if a, ok := s.admins[id]; ok {
		return a, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubAdminStore) FindByIdentifier(context.Context, string) (*domain.Admin, error) {
	return nil, domain.ErrUserNotFound
}

func newUserStore() *stubUserStore {
	return &stubUserStore{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Alice", Role: domain.RoleUser},
	}}
}

func newAdminStore() *stubAdminStore {
	return &stubAdminStore{admins: map[string]*domain.Admin{
		"admin-1": {ID: "admin-1", Name: "Root"},
	}}
}

// runMiddleware drives mw against req and reports the recorder, whether
// next ran, and the error the middleware returned. Sentinel errors from
// the verifier are asserted directly; in the wired app the central error
// handler maps them to 401 responses.
func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, err
}

func TestUserAuth_BearerToken(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	signed, err := tokens.Sign("user-1")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := UserAuth(tokens, newUserStore(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		user, ok := c.Get(CtxUser).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Fatalf("expected resolved user, got %v", c.Get(CtxUser))
		}
		if role, _ := c.Get(CtxRole).(domain.Role); role != domain.RoleUser {
			t.Fatalf("expected user role, got %v", c.Get(CtxRole))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserAuth_CookieToken(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	signed, _ := tokens.Sign("user-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})

	rec, called, _ := runMiddleware(t, UserAuth(tokens, newUserStore(), zerolog.Nop()), req)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected cookie token accepted, got %d", rec.Code)
	}
}

func TestUserAuth_MissingToken(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, called, err := runMiddleware(t, UserAuth(tokens, newUserStore(), zerolog.Nop()), req)
	if called {
		t.Fatalf("next must not run without a token")
	}
	if !errors.Is(err, auth.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestUserAuth_ExpiredToken(t *testing.T) {
	// Sign past-dated claims directly so the token is expired on arrival.
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("user-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	tokens := auth.NewTokenManager("user-secret", time.Hour)
	_, called, err := runMiddleware(t, UserAuth(tokens, newUserStore(), zerolog.Nop()), req)
	if called {
		t.Fatalf("next must not run with an expired token")
	}
	if !errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

// A token signed with the admin secret must never validate against the
// user verifier, and vice versa.
func TestAuth_CrossDomainTokensRejected(t *testing.T) {
	userTokens := auth.NewTokenManager("user-secret", time.Hour)
	adminTokens := auth.NewTokenManager("admin-secret", time.Hour)

	adminSigned, _ := adminTokens.Sign("admin-1")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminSigned)
	_, called, err := runMiddleware(t, UserAuth(userTokens, newUserStore(), zerolog.Nop()), req)
	if called || !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("admin token must fail user verifier, got %v", err)
	}

	userSigned, _ := userTokens.Sign("user-1")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userSigned)
	_, called, err = runMiddleware(t, AdminAuth(adminTokens, newAdminStore(), zerolog.Nop()), req)
	if called || !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("user token must fail admin verifier, got %v", err)
	}
}

func TestUserAuth_PrincipalNotFound(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	signed, _ := tokens.Sign("deleted-user")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec, called, _ := runMiddleware(t, UserAuth(tokens, newUserStore(), zerolog.Nop()), req)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted principal, got %d", rec.Code)
	}
}

// A store fault during resolution denies the request. Unavailable never
// means authenticated.
func TestUserAuth_StoreFaultDenies(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	signed, _ := tokens.Sign("user-1")

	store := newUserStore()
	store.fail = context.DeadlineExceeded

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec, called, _ := runMiddleware(t, UserAuth(tokens, store, zerolog.Nop()), req)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on store fault, got %d", rec.Code)
	}
}

func TestAdminAuth_AdminTokenHeader(t *testing.T) {
	tokens := auth.NewTokenManager("admin-secret", time.Hour)
	signed, _ := tokens.Sign("admin-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("admin-token", signed)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AdminAuth(tokens, newAdminStore(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		admin, ok := c.Get(CtxAdmin).(*domain.Admin)
		if !ok || admin.ID != "admin-1" {
			t.Fatalf("expected resolved admin, got %v", c.Get(CtxAdmin))
		}
		if role, _ := c.Get(CtxRole).(domain.Role); role != domain.RoleAdmin {
			t.Fatalf("expected admin role")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalUserAuth_Anonymous(t *testing.T) {
	tokens := auth.NewTokenManager("user-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, called, _ := runMiddleware(t, OptionalUserAuth(tokens, newUserStore()), req)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must pass, got %d", rec.Code)
	}
}
