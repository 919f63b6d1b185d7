package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/api/metrics"
	"github.com/byteverse/platform-api/internal/auth"
	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// Context keys set by the auth middleware and read by handlers.
const (
	CtxUser  = "current_user"
	CtxAdmin = "current_admin"
	CtxRole  = "role"
)

// resolveTimeout bounds the principal store lookup. A store that hangs
// must fail the request, never stall the pipeline.
const resolveTimeout = 5 * time.Second

// UserAuth verifies a user-domain token and resolves the account. The
// token travels in the Authorization header or the `token` cookie. Any
// store fault during resolution denies the request; unavailable never
// means authenticated.
func UserAuth(tokens *auth.TokenManager, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := bearerToken(c)
			if tokenStr == "" {
				if cookie, err := c.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("user", verifyReason(err)).Inc()
				return err
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), resolveTimeout)
			defer cancel()
			user, err := users.FindByID(ctx, claims.Subject)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("user", "principal_not_found").Inc()
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Error().Err(err).Str("user_id", claims.Subject).Msg("principal lookup failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "account not found")
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, user.Role)
			return next(c)
		}
	}
}

// AdminAuth verifies an admin-domain token and resolves the admin. The
// token travels in the Authorization header or the `admin-token` header.
// Admin tokens are signed with their own secret, so a user token never
// passes this verifier.
func AdminAuth(tokens *auth.TokenManager, admins ports.AdminRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := bearerToken(c)
			if tokenStr == "" {
				tokenStr = c.Request().Header.Get("admin-token")
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("admin", verifyReason(err)).Inc()
				return err
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), resolveTimeout)
			defer cancel()
			admin, err := admins.FindByID(ctx, claims.Subject)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("admin", "principal_not_found").Inc()
				if !errors.Is(err, domain.ErrUserNotFound) {
					log.Error().Err(err).Str("admin_id", claims.Subject).Msg("principal lookup failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "account not found")
			}

			c.Set(CtxAdmin, admin)
			c.Set(CtxRole, domain.RoleAdmin)
			return next(c)
		}
	}
}

// OptionalUserAuth resolves a user when a valid token is present but lets
// anonymous requests through. Used by routes whose response varies with
// the viewer, like draft visibility.
func OptionalUserAuth(tokens *auth.TokenManager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := bearerToken(c)
			if tokenStr == "" {
				if cookie, err := c.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}
			if tokenStr == "" {
				return next(c)
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), resolveTimeout)
			defer cancel()
			if user, err := users.FindByID(ctx, claims.Subject); err == nil {
				c.Set(CtxUser, user)
				c.Set(CtxRole, user.Role)
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func verifyReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "missing"
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired"
	default:
		return "invalid"
	}
}
