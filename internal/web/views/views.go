// Package views renders the portal's server-side HTML. Templates are
// embedded so the binary stays self-contained.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/auth"
)

//go:embed templates/*.html
var files embed.FS

// pageNames lists every page template; each is parsed together with the
// shared layout.
var pageNames = []string{
	"home",
	"login",
	"signup",
	"vacantes",
	"vacante_form",
	"aplicaciones",
	"empresas",
	"perfil",
	"error",
}

// Page is the data every template receives.
type Page struct {
	Title   string
	Session auth.Session
	Notice  string
	Error   string
	Data    any
}

// Renderer holds the parsed template set.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into the response.
func (r *Renderer) Render(c *fiber.Ctx, status int, name string, page Page) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return err
	}
	c.Status(status).Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
