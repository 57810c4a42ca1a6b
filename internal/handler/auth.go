package handler

import (
	"errors"
	"net/http"

	"webshop-demo/internal/service"
	"webshop-demo/internal/session"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	view    *View
	authSvc service.AuthService
}

func NewAuthHandler(view *View, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{
		view:    view,
		authSvc: authSvc,
	}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type signUpForm struct {
	Email     string `form:"email" validate:"required,email"`
	FirstName string `form:"firstname" validate:"required"`
	Password  string `form:"password" validate:"required,min=6"`
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return h.view.Render(c, "login.html", "Log in", nil)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.view.FlashRedirect(c, session.LevelError, "Invalid form submission", "/auth/login")
	}
	if err := c.Validate(&form); err != nil {
		return h.view.FlashRedirect(c, session.LevelError, "Please enter a valid email and password", "/auth/login")
	}

	user, err := h.authSvc.Login(ctx, form.Email, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		return h.view.FlashRedirect(c, session.LevelError, "Invalid credentials. Please sign up first!", "/auth/sign-up")
	}
	if err != nil {
		return err
	}

	if err := h.view.Sessions.LoginUser(ctx, user.ID); err != nil {
		return err
	}

	return h.view.FlashRedirect(c, session.LevelSuccess, "Welcome back, "+user.FirstName+"!", "/")
}

func (h *AuthHandler) SignUpForm(c echo.Context) error {
	return h.view.Render(c, "signup.html", "Sign up", nil)
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var form signUpForm
	if err := c.Bind(&form); err != nil {
		return h.view.FlashRedirect(c, session.LevelError, "Invalid form submission", "/auth/sign-up")
	}
	if err := c.Validate(&form); err != nil {
		return h.view.FlashRedirect(c, session.LevelError, "Please fill in every field (password at least 6 characters)", "/auth/sign-up")
	}

	user, err := h.authSvc.Register(ctx, form.Email, form.FirstName, form.Password)
	if errors.Is(err, service.ErrEmailTaken) {
		return h.view.FlashRedirect(c, session.LevelError, "That email is already registered", "/auth/sign-up")
	}
	if err != nil {
		return err
	}

	// Log the new account straight in, no second login step.
	if err := h.view.Sessions.LoginUser(ctx, user.ID); err != nil {
		return err
	}

	return h.view.FlashRedirect(c, session.LevelSuccess, "Account created", "/")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.view.Sessions.LogoutUser(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/auth/login")
}
