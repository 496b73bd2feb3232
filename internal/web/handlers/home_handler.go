package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/web/views"
)

// HomeHandler serves the public landing and company directory views.
type HomeHandler struct {
	client   *backend.Client
	renderer *views.Renderer
}

// NewHomeHandler constructs handler.
func NewHomeHandler(client *backend.Client, renderer *views.Renderer) *HomeHandler {
	return &HomeHandler{client: client, renderer: renderer}
}

// Index handles GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	return h.renderer.Render(c, http.StatusOK, "home", views.Page{
		Title:   "Inicio",
		Session: auth.SessionFromContext(c),
	})
}

// Empresas handles GET /empresas.
func (h *HomeHandler) Empresas(c *fiber.Ctx) error {
	empresas, err := h.client.Empresas(c.UserContext())
	if err != nil {
		return err
	}
	return h.renderer.Render(c, http.StatusOK, "empresas", views.Page{
		Title:   "Empresas",
		Session: auth.SessionFromContext(c),
		Data:    struct{ Empresas []domain.Profile }{Empresas: empresas},
	})
}
