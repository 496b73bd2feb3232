package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/web/views"
)

// VacantesHandler serves the vacancy list and the company-side vacancy
// management views.
type VacantesHandler struct {
	client   *backend.Client
	renderer *views.Renderer
	logger   *zap.Logger
}

// NewVacantesHandler constructs handler.
func NewVacantesHandler(client *backend.Client, renderer *views.Renderer, logger *zap.Logger) *VacantesHandler {
	return &VacantesHandler{client: client, renderer: renderer, logger: logger}
}

// vacanteCard pairs a vacancy with the controls the current session may see.
// The flags are advisory; the backend re-authorizes the actual call.
type vacanteCard struct {
	Vacante           domain.Vacante
	CanApply          bool
	CanEdit           bool
	CanDelete         bool
	CanViewApplicants bool
}

type vacantesPage struct {
	Search   string
	Vacantes []vacanteCard
}

type vacanteForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Salario     string `form:"salario"`
	Location    string `form:"location"`
	Modality    string `form:"modality"`
	IsActive    string `form:"is_active"`
}

type vacanteFormPage struct {
	IsEdit      bool
	Action      string
	Title       string
	Description string
	Salario     string
	Location    string
	Modality    string
	IsActive    bool
}

// List handles GET /vacantes.
func (h *VacantesHandler) List(c *fiber.Ctx) error {
	return h.renderList(c, http.StatusOK, c.Query("query"), "", "")
}

// Apply handles POST /vacantes/:id/aplicar. The button is only offered to
// graduate sessions, but the backend has the final say; its denial comes back
// through the error middleware.
func (h *VacantesHandler) Apply(c *fiber.Ctx) error {
	if err := h.client.Aplicar(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return h.renderList(c, http.StatusOK, "", "¡Has aplicado exitosamente a esta vacante!", "")
}

// CreateForm handles GET /crear-vacante.
func (h *VacantesHandler) CreateForm(c *fiber.Ctx) error {
	return h.renderForm(c, http.StatusOK, vacanteFormPage{Action: "/crear-vacante"}, "")
}

// Create handles POST /crear-vacante.
func (h *VacantesHandler) Create(c *fiber.Ctx) error {
	var form vacanteForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if form.Title == "" || form.Description == "" {
		return h.renderForm(c, http.StatusBadRequest, formPageFrom(form, false, "/crear-vacante"),
			"Título y descripción son obligatorios.")
	}

	create := backend.VacanteCreate{
		Title:       form.Title,
		Description: form.Description,
		Salario:     parseSalario(form.Salario),
		Location:    form.Location,
		Modality:    form.Modality,
	}
	if _, err := h.client.CreateVacante(c.UserContext(), create); err != nil {
		return err
	}
	return c.Redirect("/vacantes", fiber.StatusSeeOther)
}

// EditForm handles GET /vacantes/editar/:id, prefilled from the backend.
func (h *VacantesHandler) EditForm(c *fiber.Ctx) error {
	id := c.Params("id")
	vacante, err := h.client.Vacante(c.UserContext(), id)
	if err != nil {
		return err
	}

	page := vacanteFormPage{
		IsEdit:      true,
		Action:      "/vacantes/editar/" + id,
		Title:       vacante.Title,
		Description: vacante.Description,
		Location:    vacante.Location,
		Modality:    vacante.Modality,
		IsActive:    vacante.IsActive,
	}
	if vacante.Salario != nil {
		page.Salario = strconv.FormatFloat(*vacante.Salario, 'f', -1, 64)
	}
	return h.renderForm(c, http.StatusOK, page, "")
}

// Update handles POST /vacantes/editar/:id.
func (h *VacantesHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var form vacanteForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if form.Title == "" || form.Description == "" {
		return h.renderForm(c, http.StatusBadRequest, formPageFrom(form, true, "/vacantes/editar/"+id),
			"Título y descripción son obligatorios.")
	}

	isActive := form.IsActive == "true"
	update := backend.VacanteUpdate{
		Title:       &form.Title,
		Description: &form.Description,
		Salario:     parseSalario(form.Salario),
		Location:    &form.Location,
		Modality:    &form.Modality,
		IsActive:    &isActive,
	}
	if _, err := h.client.UpdateVacante(c.UserContext(), id, update); err != nil {
		return err
	}
	return c.Redirect("/vacantes", fiber.StatusSeeOther)
}

// Delete handles POST /vacantes/:id/borrar.
func (h *VacantesHandler) Delete(c *fiber.Ctx) error {
	if err := h.client.DeleteVacante(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Redirect("/vacantes", fiber.StatusSeeOther)
}

// Aplicaciones handles GET /vacantes/:id/aplicaciones.
func (h *VacantesHandler) Aplicaciones(c *fiber.Ctx) error {
	aplicaciones, err := h.client.Aplicaciones(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.renderer.Render(c, http.StatusOK, "aplicaciones", views.Page{
		Title:   "Aplicaciones",
		Session: auth.SessionFromContext(c),
		Data:    struct{ Aplicaciones []domain.Aplicacion }{Aplicaciones: aplicaciones},
	})
}

func (h *VacantesHandler) renderList(c *fiber.Ctx, status int, search, notice, errMsg string) error {
	session := auth.SessionFromContext(c)
	vacantes, err := h.client.Vacantes(c.UserContext(), search)
	if err != nil {
		return err
	}

	cards := make([]vacanteCard, 0, len(vacantes))
	for _, vacante := range vacantes {
		permitted := auth.PermittedActions(session, vacante)
		cards = append(cards, vacanteCard{
			Vacante:           vacante,
			CanApply:          permitted.Can(auth.ActionApply),
			CanEdit:           permitted.Can(auth.ActionEdit),
			CanDelete:         permitted.Can(auth.ActionDelete),
			CanViewApplicants: permitted.Can(auth.ActionViewApplicants),
		})
	}

	return h.renderer.Render(c, status, "vacantes", views.Page{
		Title:   "Vacantes",
		Session: session,
		Notice:  notice,
		Error:   errMsg,
		Data:    vacantesPage{Search: search, Vacantes: cards},
	})
}

func (h *VacantesHandler) renderForm(c *fiber.Ctx, status int, page vacanteFormPage, errMsg string) error {
	title := "Crear Vacante"
	if page.IsEdit {
		title = "Editar Vacante"
	}
	return h.renderer.Render(c, status, "vacante_form", views.Page{
		Title:   title,
		Session: auth.SessionFromContext(c),
		Error:   errMsg,
		Data:    page,
	})
}

func formPageFrom(form vacanteForm, isEdit bool, action string) vacanteFormPage {
	return vacanteFormPage{
		IsEdit:      isEdit,
		Action:      action,
		Title:       form.Title,
		Description: form.Description,
		Salario:     form.Salario,
		Location:    form.Location,
		Modality:    form.Modality,
		IsActive:    form.IsActive == "true",
	}
}

func parseSalario(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}
