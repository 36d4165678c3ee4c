package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"reciclothes/internal/errors"
	"reciclothes/internal/service"
)

const (
	signupSuccessMessage = "account registered successfully"
	loginSuccessMessage  = "login successful"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Register a new customer
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} errors.Result
// @Failure 400 {object} errors.Result
// @Failure 500 {object} errors.Result
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Result{Message: errors.ErrEmptyPassword.Error()})
	}

	_, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return h.fail(c, "signup failed", err)
	}

	return c.JSON(http.StatusOK, errors.Result{Success: true, Message: signupSuccessMessage})
}

// Login godoc
// @Summary Verify customer credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.Result
// @Failure 400 {object} errors.Result
// @Failure 500 {object} errors.Result
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return h.fail(c, "login failed", err)
	}

	return c.JSON(http.StatusOK, errors.Result{Success: true, Message: loginSuccessMessage})
}

// fail writes the mapped Result, logging infrastructure failures with their cause.
func (h *AuthHandler) fail(c echo.Context, msg string, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request().Context(), msg,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToResult())
}
