package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// AdminHandler serves the back-office auth endpoints.
type AdminHandler struct {
	adminAuth ports.AdminAuthService
}

func NewAdminHandler(adminAuth ports.AdminAuthService) *AdminHandler {
	return &AdminHandler{adminAuth: adminAuth}
}

type adminLoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type adminAuthResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token,omitempty"`
	Admin   *domain.Admin `json:"admin,omitempty"`
}

// Login authenticates an admin by username or email. Admin tokens are
// signed with the admin secret and never validate on user routes.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Admin credentials"
// @Success      200   {object}  adminAuthResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	token, admin, err := h.adminAuth.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminAuthResponse{Success: true, Token: token, Admin: admin})
}

// Me returns the authenticated admin.
//
// @Summary      Current admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/admin/me [get]
func (h *AdminHandler) Me(c echo.Context) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	return ok(c, admin)
}
