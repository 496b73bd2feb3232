package web

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/events"
	"github.com/spec-kit/egresados-portal/internal/observability"
	"github.com/spec-kit/egresados-portal/internal/web/views"
	apperrors "github.com/spec-kit/egresados-portal/pkg/util"
)

// MiddlewareConfig bundles dependencies for the global middlewares.
type MiddlewareConfig struct {
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Renderer *views.Renderer
	Resolver *auth.Resolver
	Timeout  time.Duration
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(cfg))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware converts every escaped error into either a lazy
// logout redirect (backend said the credential is no longer valid) or a
// user-visible error page. Nothing unhandled reaches the end user.
func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				cfg.Logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && apiErr.AuthFailure() {
				// The backend refused the credential. Our own expiry
				// check is the first line of defense; this is the
				// server-side fallback. Clear the slot and start over.
				if endErr := cfg.Resolver.EndSession(c.UserContext(), events.ReasonRejected); endErr != nil {
					cfg.Logger.Warn("lazy logout failed", zap.Error(endErr))
				}
				err = c.Redirect("/login", fiber.StatusSeeOther)
				return
			}

			domainErr := toDomainError(err)
			cfg.Metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= 500 {
				cfg.Logger.Error("request failed", zap.Error(domainErr))
			}

			page := views.Page{
				Title:   "Error",
				Session: auth.SessionFromContext(c),
				Data:    struct{ Message string }{Message: domainErr.Message},
			}
			if renderErr := cfg.Renderer.Render(c, domainErr.HTTPStatus, "error", page); renderErr != nil {
				cfg.Logger.Error("error page render failed", zap.Error(renderErr))
				c.Status(http.StatusInternalServerError)
			}
			err = nil
		}()
		return c.Next()
	}
}

// toDomainError folds backend and transport failures into the user-visible
// error taxonomy.
func toDomainError(err error) *apperrors.DomainError {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Detail
		if message == "" {
			message = "la operación fue rechazada por el servidor"
		}
		return apperrors.NewDomainError("BACKEND_REJECTED", message, apiErr.Status, nil)
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError("REQUEST_FAILED", fiberErr.Message, fiberErr.Code, nil)
	}
	if isTransport(err) {
		return apperrors.ToDomainError(apperrors.NewBackendUnavailable(err))
	}
	return apperrors.ToDomainError(err)
}

func isTransport(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
