package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/api/middleware"
	"github.com/byteverse/platform-api/internal/core/domain"
)

// currentUser extracts the principal resolved by the user auth
// middleware. Presence proves the middleware ran; its absence on a
// protected route is a wiring error and reads as unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CtxUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// viewer returns the optional principal for routes that serve both
// anonymous and authenticated requests.
func viewer(c echo.Context) (id string, role domain.Role) {
	if user, ok := c.Get(middleware.CtxUser).(*domain.User); ok && user != nil {
		return user.ID, user.Role
	}
	return "", ""
}

func currentAdmin(c echo.Context) (*domain.Admin, error) {
	admin, ok := c.Get(middleware.CtxAdmin).(*domain.Admin)
	if !ok || admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return admin, nil
}
