package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "wayfarer/internal/errors"
	"wayfarer/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	// exposeResetLink echoes the reset link in the forgot-password
	// response. Diagnostic aid, never enabled in production.
	exposeResetLink bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, exposeResetLink bool) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		exposeResetLink: exposeResetLink,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a password-reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password-reset redemption. The token
// may arrive in the body or as a path segment; the body takes precedence.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user,omitempty"`
}

// ForgotPasswordResponse acknowledges a password-reset request. The body is
// identical whether or not the account exists; only the diagnostic
// reset_link field ever varies, and only outside production.
type ForgotPasswordResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ResetLink string `json:"reset_link,omitempty"`
}

const forgotAckMessage = "If that email address is in our database, we will send a password reset link to it"

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return missingFieldsError()
	}

	token, user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return taxonomyError(err)
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return missingFieldsError()
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return taxonomyError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  user,
	})
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} ForgotPasswordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return missingFieldsError()
	}

	resetLink, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return taxonomyError(err)
	}

	resp := ForgotPasswordResponse{
		Status:  "success",
		Message: forgotAckMessage,
	}
	if h.exposeResetLink && resetLink != "" {
		resp.ResetLink = resetLink
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Redeem a password reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string false "Reset token"
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return missingFieldsError()
	}

	token := req.Token
	if token == "" {
		token = c.Param("token")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), token, req.Password); err != nil {
		return taxonomyError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "password has been reset, please log in again",
	})
}

// taxonomyError shapes a service error into its HTTP form.
func taxonomyError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func missingFieldsError() *echo.HTTPError {
	return taxonomyError(apperrors.ErrMissingFields)
}
