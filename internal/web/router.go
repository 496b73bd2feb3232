package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/domain"
	"github.com/spec-kit/egresados-portal/internal/web/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Home     *handlers.HomeHandler
	Auth     *handlers.AuthHandler
	Vacantes *handlers.VacantesHandler
	Profile  *handlers.ProfileHandler
	Guard    *auth.Guard
}

// RegisterRoutes wires the portal's views. The route map mirrors the guard
// policy: public views resolve the session only for chrome, company views
// require the empresa role, the profile requires any authenticated session.
// Guards run on every navigation; nothing about the session is cached between
// requests.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Attach())

	app.Get("/", cfg.Home.Index)
	app.Get("/empresas", cfg.Home.Empresas)

	app.Get("/login", cfg.Auth.LoginForm)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/signup", cfg.Auth.SignupForm)
	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/logout", cfg.Auth.Logout)

	app.Get("/vacantes", cfg.Vacantes.List)
	app.Post("/vacantes/:id/aplicar", cfg.Vacantes.Apply)

	empresa := cfg.Guard.Protect(domain.RoleEmpresa)
	app.Get("/crear-vacante", empresa, cfg.Vacantes.CreateForm)
	app.Post("/crear-vacante", empresa, cfg.Vacantes.Create)
	app.Get("/vacantes/editar/:id", empresa, cfg.Vacantes.EditForm)
	app.Post("/vacantes/editar/:id", empresa, cfg.Vacantes.Update)
	app.Post("/vacantes/:id/borrar", empresa, cfg.Vacantes.Delete)
	app.Get("/vacantes/:id/aplicaciones", empresa, cfg.Vacantes.Aplicaciones)

	anyUser := cfg.Guard.Protect()
	app.Get("/perfil", anyUser, cfg.Profile.Show)
	app.Post("/perfil", anyUser, cfg.Profile.Update)
}
