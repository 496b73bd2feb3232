package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

func TestGuardAuthorize(t *testing.T) {
	ctx := context.Background()
	resolver, store, _ := newTestResolver(t)
	guard := NewGuard(resolver)

	// Empty store: not logged in at all.
	if decision, _ := guard.Authorize(ctx, domain.RoleEmpresa); decision != RedirectToLogin {
		t.Errorf("Authorize(empty store) = %v, want RedirectToLogin", decision)
	}

	// Logged in as egresado, view requires empresa: wrong role, not missing
	// login — goes to the landing page.
	egresado := mintUserToken(t, "g1", "egresado", time.Now().Add(time.Hour))
	if err := store.Set(ctx, egresado); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	if decision, _ := guard.Authorize(ctx, domain.RoleEmpresa); decision != RedirectToUnauthorized {
		t.Errorf("Authorize(egresado, need empresa) = %v, want RedirectToUnauthorized", decision)
	}

	// Empty required set: any authenticated session qualifies.
	if decision, session := guard.Authorize(ctx); decision != Allow || session.SubjectID != "g1" {
		t.Errorf("Authorize(no roles) = %v/%+v, want Allow for g1", decision, session)
	}

	empresa := mintUserToken(t, "c1", "empresa", time.Now().Add(time.Hour))
	if err := store.Set(ctx, empresa); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	if decision, _ := guard.Authorize(ctx, domain.RoleEmpresa); decision != Allow {
		t.Errorf("Authorize(empresa, need empresa) = %v, want Allow", decision)
	}
}

func TestGuardProtectRedirects(t *testing.T) {
	resolver, store, _ := newTestResolver(t)
	guard := NewGuard(resolver)

	app := fiber.New()
	app.Get("/crear-vacante", guard.Protect(domain.RoleEmpresa), func(c *fiber.Ctx) error {
		session := SessionFromContext(c)
		return c.SendString("ok " + session.SubjectID)
	})

	request := func() (int, string) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", "/crear-vacante", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close() //nolint:errcheck
		return resp.StatusCode, resp.Header.Get("Location")
	}

	// Not logged in.
	if status, location := request(); status != fiber.StatusSeeOther || location != "/login" {
		t.Errorf("unauthenticated: %d %q, want 303 /login", status, location)
	}

	// Wrong role.
	ctx := context.Background()
	if err := store.Set(ctx, mintUserToken(t, "g1", "egresado", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	if status, location := request(); status != fiber.StatusSeeOther || location != "/" {
		t.Errorf("egresado: %d %q, want 303 /", status, location)
	}

	// Matching role.
	if err := store.Set(ctx, mintUserToken(t, "c1", "empresa", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	if status, _ := request(); status != fiber.StatusOK {
		t.Errorf("empresa: %d, want 200", status)
	}
}

func TestGuardLoginThenExpiryEndToEnd(t *testing.T) {
	resolver, store, _ := newTestResolver(t)
	base := time.Now()
	resolver.now = func() time.Time { return base }
	guard := NewGuard(resolver)

	app := fiber.New()
	app.Get("/vacantes/v1/aplicaciones", guard.Protect(domain.RoleEmpresa), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Login: a fresh empresa credential lands in the store.
	token := mintUserToken(t, "c1", "empresa", base.Add(time.Hour))
	if _, err := resolver.StartSession(context.Background(), token); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/vacantes/v1/aplicaciones", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("before expiry: %d, want 200", resp.StatusCode)
	}

	// Same navigation after the credential expired: back to login, slot empty.
	resolver.now = func() time.Time { return base.Add(2 * time.Hour) }
	resp, err = app.Test(httptest.NewRequest("GET", "/vacantes/v1/aplicaciones", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Errorf("past expiry: %d %q, want 303 /login", resp.StatusCode, resp.Header.Get("Location"))
	}
	if got := storedToken(t, store); got != "" {
		t.Errorf("store = %q, want empty after expiry detection", got)
	}
}
