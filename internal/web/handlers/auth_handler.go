package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/events"
	"github.com/spec-kit/egresados-portal/internal/web/views"
)

// AuthHandler serves the login, signup and logout flows.
type AuthHandler struct {
	client   *backend.Client
	resolver *auth.Resolver
	renderer *views.Renderer
	logger   *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(client *backend.Client, resolver *auth.Resolver, renderer *views.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{client: client, resolver: resolver, renderer: renderer, logger: logger}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type signupForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.renderLogin(c, http.StatusOK, loginForm{}, "")
}

// Login handles POST /login. Failures render a single generic message: the
// portal never tells an attacker which half of the credentials was wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if form.Email == "" || form.Password == "" {
		return h.renderLogin(c, http.StatusBadRequest, form, "Email y contraseña son obligatorios.")
	}

	resp, err := h.client.Login(c.UserContext(), form.Email, form.Password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			return h.renderLogin(c, http.StatusUnauthorized, form, "Credenciales inválidas.")
		}
		return err
	}

	if _, err := h.resolver.StartSession(c.UserContext(), resp.AccessToken); err != nil {
		h.logger.Error("backend issued an unusable credential", zap.Error(err))
		return fiber.NewError(http.StatusBadGateway, "login failed")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// SignupForm handles GET /signup.
func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return h.renderSignup(c, http.StatusOK, signupForm{Role: string(domain.RoleEgresado)}, "", "")
}

// Signup handles POST /signup. The backend either opens a session right away
// (token in the response) or leaves the account pending email confirmation
// (message only).
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form signupForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	role, ok := domain.ParseRole(form.Role)
	if !ok || form.Email == "" || form.Password == "" {
		return h.renderSignup(c, http.StatusBadRequest, form, "", "Email, contraseña y tipo de cuenta son obligatorios.")
	}

	resp, err := h.client.Signup(c.UserContext(), form.Email, form.Password, role)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Detail
			if message == "" {
				message = "No se pudo crear la cuenta."
			}
			return h.renderSignup(c, http.StatusBadRequest, form, "", message)
		}
		return err
	}

	if resp.AccessToken != "" {
		if _, err := h.resolver.StartSession(c.UserContext(), resp.AccessToken); err != nil {
			h.logger.Error("backend issued an unusable credential", zap.Error(err))
			return fiber.NewError(http.StatusBadGateway, "signup failed")
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return h.renderSignup(c, http.StatusOK, signupForm{Role: form.Role}, resp.Message, "")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.resolver.EndSession(c.UserContext(), events.ReasonLogout); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, form loginForm, errMsg string) error {
	return h.renderer.Render(c, status, "login", views.Page{
		Title:   "Iniciar Sesión",
		Session: auth.SessionFromContext(c),
		Error:   errMsg,
		Data:    struct{ Email string }{Email: form.Email},
	})
}

func (h *AuthHandler) renderSignup(c *fiber.Ctx, status int, form signupForm, notice, errMsg string) error {
	return h.renderer.Render(c, status, "signup", views.Page{
		Title:   "Registrarse",
		Session: auth.SessionFromContext(c),
		Notice:  notice,
		Error:   errMsg,
		Data: struct {
			Email string
			Role  string
		}{Email: form.Email, Role: form.Role},
	})
}
