package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/ports"
)

// CommunityHandler serves community membership.
type CommunityHandler struct {
	community ports.CommunityService
}

func NewCommunityHandler(community ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{community: community}
}

type joinRequest struct {
	Name      string   `json:"name"      validate:"required,min=2,max=100"`
	Email     string   `json:"email"     validate:"required,email"`
	Phone     string   `json:"phone"     validate:"omitempty,max=30"`
	Interests []string `json:"interests"`
}

// Join enrolls a member, or reactivates a lapsed one in place. Both
// paths send a welcome email; a duplicate active membership conflicts.
//
// @Summary      Join community
// @Tags         community
// @Accept       json
// @Produce      json
// @Param        body  body      joinRequest  true  "Member details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Router       /api/community/join [post]
func (h *CommunityHandler) Join(c echo.Context) error {
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	member, reactivated, err := h.community.Join(c.Request().Context(), req.Name, req.Email, req.Phone, req.Interests)
	if err != nil {
		return err
	}
	if reactivated {
		return c.JSON(http.StatusOK, envelope{Success: true, Message: "membership reactivated", Data: member})
	}
	return created(c, member)
}

// Members lists active community members. Admin only.
//
// @Summary      List members
// @Tags         community
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /api/community/members [get]
func (h *CommunityHandler) Members(c echo.Context) error {
	members, err := h.community.Members(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, members)
}
