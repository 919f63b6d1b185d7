package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

// AuthHandler serves registration, login and account recovery.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
	tokenTTL     time.Duration
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	return c.JSON(http.StatusCreated, authResponse{Success: true, Token: token, User: user})
}

// Login authenticates a user.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	return message(c, http.StatusOK, "logged out")
}

// Me returns the authenticated account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return ok(c, user)
}

type updateDetailsRequest struct {
	Name          *string             `json:"name"           validate:"omitempty,min=2,max=60"`
	Bio           *string             `json:"bio"            validate:"omitempty,max=500"`
	Website       *string             `json:"website"        validate:"omitempty,url"`
	Avatar        *string             `json:"avatar"         validate:"omitempty,url"`
	IsEmailPublic *bool               `json:"is_email_public"`
	SocialLinks   *domain.SocialLinks `json:"social_links"`
}

// UpdateDetails updates the authenticated account's profile.
//
// @Summary      Update profile details
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateDetailsRequest  true  "Profile changes"
// @Success      200   {object}  map[string]any
// @Router       /api/auth/updatedetails [put]
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	updated, err := h.authService.UpdateDetails(c.Request().Context(), user.ID, ports.ProfileUpdate{
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

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// UpdatePassword rotates the password after checking the current one.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Password change"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	token, err := h.authService.UpdatePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token})
}

// Verify confirms an email address from the emailed link.
//
// @Summary      Verify email
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]any
// @Router       /api/auth/verify/{token} [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	if err := h.authService.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "email verified")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword emails a short-lived reset link.
//
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/auth/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return message(c, http.StatusOK, "reset email sent")
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword sets a new password from the emailed token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  authResponse
// @Failure      400    {object}  map[string]any
// @Router       /api/auth/resetpassword/{token} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	token, user, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		return err
	}
	h.setTokenCookie(c, token)
	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
