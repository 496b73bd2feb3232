package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// Decision is the route guard's verdict for a navigation attempt.
type Decision int

const (
	Allow Decision = iota
	// RedirectToLogin: no authenticated session at all.
	RedirectToLogin
	// RedirectToUnauthorized: authenticated, but the role does not qualify.
	// Sent to the public landing view, not to login — the user is logged in,
	// just in the wrong kind of account.
	RedirectToUnauthorized
)

// Redirect targets for the two restrictive decisions.
const (
	loginPath   = "/login"
	landingPath = "/"
)

const sessionKey = "auth_session"

// Guard decides whether a navigation may proceed. It is a pure function of
// the credential store at call time and must run on every navigation.
type Guard struct {
	resolver *Resolver
}

// NewGuard builds a guard over the resolver.
func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Authorize evaluates a navigation against the required roles. An empty role
// set means any authenticated session qualifies. The resolved session is
// returned alongside the decision so callers do not resolve twice.
func (g *Guard) Authorize(ctx context.Context, required ...domain.Role) (Decision, Session) {
	session := g.resolver.Resolve(ctx)
	if !session.Authenticated {
		return RedirectToLogin, session
	}
	if len(required) > 0 && !session.HasRole(required...) {
		return RedirectToUnauthorized, session
	}
	return Allow, session
}

// Protect returns middleware enforcing the required roles on a route,
// issuing the redirect that matches the guard's decision.
func (g *Guard) Protect(required ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, session := g.Authorize(c.UserContext(), required...)
		switch decision {
		case RedirectToLogin:
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		case RedirectToUnauthorized:
			return c.Redirect(landingPath, fiber.StatusSeeOther)
		}
		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// Attach resolves the session without enforcement so public views can render
// session-dependent chrome (navigation links, per-record controls).
func (g *Guard) Attach() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(sessionKey, g.resolver.Resolve(c.UserContext()))
		return c.Next()
	}
}

// SessionFromContext retrieves the session stashed by Protect or Attach.
func SessionFromContext(c *fiber.Ctx) Session {
	if session, ok := c.Locals(sessionKey).(Session); ok {
		return session
	}
	return Session{}
}
