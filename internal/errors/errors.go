package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrAccountNotFound is returned when no account matches the login email.
	ErrAccountNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when the password does not verify against the stored hash.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidCredentials replaces both login failures when uniform login errors are enabled.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmptyPassword is returned when a signup carries no password.
	ErrEmptyPassword = errors.New("password is required")
	// ErrPasswordTooLong is returned when the password exceeds the hash input limit.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrNotInserted is returned when an insert did not affect exactly one row.
	ErrNotInserted = errors.New("account was not inserted")
)

// ServerErrorMessage is the only message clients see for infrastructure failures.
const ServerErrorMessage = "server error"

// Result is the JSON body returned by signup, login and every error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToResult converts an HTTPError to a failed Result.
func (e *HTTPError) ToResult() Result {
	return Result{
		Success: false,
		Message: e.Message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmptyPassword),
		errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, rootMessage(err))
	default:
		return NewHTTPError(http.StatusInternalServerError, ServerErrorMessage)
	}
}

// IsServerError reports whether err maps to a 5xx response.
func IsServerError(err error) bool {
	return MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError
}

func rootMessage(err error) string {
	for _, sentinel := range []error{
		ErrAccountNotFound, ErrWrongPassword, ErrInvalidCredentials, ErrEmptyPassword, ErrPasswordTooLong,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// HTTPErrorHandler renders every error reaching echo as a Result body.
// Internal details of 5xx errors are logged, never sent.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := ServerErrorMessage

		var he *echo.HTTPError
		var appErr *HTTPError
		switch {
		case errors.As(err, &appErr):
			status, message = appErr.StatusCode, appErr.Message
		case errors.As(err, &he):
			status = he.Code
			if status < http.StatusInternalServerError {
				if m, ok := he.Message.(string); ok {
					message = m
				} else {
					message = http.StatusText(status)
				}
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Result{Success: false, Message: message})
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}
