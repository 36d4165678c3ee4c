package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

const (
	loginPage  = "LogIn.html"
	signupPage = "signup.html"
)

// PageHandler serves the HTML entry pages of the storefront.
type PageHandler struct {
	publicDir string
}

// NewPageHandler creates a page handler rooted at publicDir.
func NewPageHandler(publicDir string) *PageHandler {
	return &PageHandler{publicDir: publicDir}
}

// LoginPage serves the login form.
func (h *PageHandler) LoginPage(c echo.Context) error {
	return c.File(filepath.Join(h.publicDir, loginPage))
}

// SignupPage serves the registration form.
func (h *PageHandler) SignupPage(c echo.Context) error {
	return c.File(filepath.Join(h.publicDir, signupPage))
}
