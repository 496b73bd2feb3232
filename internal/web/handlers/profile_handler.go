package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/web/views"
)

// ProfileHandler serves the role-agnostic personal profile view.
type ProfileHandler struct {
	client   *backend.Client
	renderer *views.Renderer
}

// NewProfileHandler constructs handler.
func NewProfileHandler(client *backend.Client, renderer *views.Renderer) *ProfileHandler {
	return &ProfileHandler{client: client, renderer: renderer}
}

type profileForm struct {
	FullName       string `form:"full_name"`
	GraduationYear string `form:"graduation_year"`
	Carrera        string `form:"carrera"`
	CompanyName    string `form:"company_name"`
	Website        string `form:"website"`
}

type profilePage struct {
	Profile        domain.Profile
	GraduationYear string
}

// Show handles GET /perfil.
func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	profile, err := h.client.Me(c.UserContext())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, *profile, "", "")
}

// Update handles POST /perfil. Only the fields relevant to the session's role
// are submitted by the form; the rest stay nil and untouched.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var form profileForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	update := backend.ProfileUpdate{}
	session := auth.SessionFromContext(c)
	if session.IsEmpresa() {
		update.CompanyName = &form.CompanyName
		update.Website = &form.Website
	} else {
		update.FullName = &form.FullName
		update.Carrera = &form.Carrera
		if form.GraduationYear != "" {
			year, err := strconv.Atoi(form.GraduationYear)
			if err != nil {
				profile, meErr := h.client.Me(c.UserContext())
				if meErr != nil {
					return meErr
				}
				return h.render(c, http.StatusBadRequest, *profile, "", "El año de graduación debe ser un número.")
			}
			update.GraduationYear = &year
		}
	}

	profile, err := h.client.UpdateMe(c.UserContext(), update)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, *profile, "Perfil actualizado.", "")
}

func (h *ProfileHandler) render(c *fiber.Ctx, status int, profile domain.Profile, notice, errMsg string) error {
	page := profilePage{Profile: profile}
	if profile.GraduationYear != nil {
		page.GraduationYear = strconv.Itoa(*profile.GraduationYear)
	}
	return h.renderer.Render(c, status, "perfil", views.Page{
		Title:   "Mi Perfil",
		Session: auth.SessionFromContext(c),
		Notice:  notice,
		Error:   errMsg,
		Data:    page,
	})
}
