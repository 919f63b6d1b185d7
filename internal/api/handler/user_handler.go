package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// UserHandler serves member profiles.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// PublicProfile returns a member's public profile with their published
// blogs and showcased projects. The email is omitted unless the member
// opted in to showing it.
//
// @Summary      Public profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  map[string]any
// @Failure      404       {object}  map[string]any
// @Router       /api/users/profile/{username} [get]
func (h *UserHandler) PublicProfile(c echo.Context) error {
	profile, err := h.users.PublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return ok(c, profile)
}

// Profile returns the authenticated member's own record.
//
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/users/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.users.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return ok(c, profile)
}

type profileUpdateRequest struct {
	Name          *string             `json:"name"            validate:"omitempty,min=2,max=60"`
	Bio           *string             `json:"bio"             validate:"omitempty,max=500"`
	Website       *string             `json:"website"         validate:"omitempty,url"`
	Avatar        *string             `json:"avatar"          validate:"omitempty,url"`
	IsEmailPublic *bool               `json:"is_email_public"`
	SocialLinks   *domain.SocialLinks `json:"social_links"`
}

// UpdateProfile applies the non-nil fields of the payload.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileUpdateRequest  true  "Profile changes"
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.ProfileUpdate{
		Name:          req.Name,
		Bio:           req.Bio,
		Website:       req.Website,
		Avatar:        req.Avatar,
		IsEmailPublic: req.IsEmailPublic,
		SocialLinks:   req.SocialLinks,
	})
	if err != nil {
		return err
	}
	return ok(c, updated)
}
