package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/egresados-portal/internal/auth"
	"github.com/spec-kit/egresados-portal/internal/backend"
	"github.com/spec-kit/egresados-portal/internal/config"
	"github.com/spec-kit/egresados-portal/internal/credstore"
	"github.com/spec-kit/egresados-portal/internal/events"
	"github.com/spec-kit/egresados-portal/internal/observability"
	"github.com/spec-kit/egresados-portal/internal/web"
	"github.com/spec-kit/egresados-portal/internal/web/handlers"
	"github.com/spec-kit/egresados-portal/internal/web/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store := newCredentialStore(cfg, logger)
	if closer, ok := store.(interface{ Close() }); ok {
		defer closer.Close()
	}

	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventSessionStarted, func(_ context.Context, event events.Event) error {
		logger.Info("session started",
			zap.String("subject_id", event.SubjectID),
			zap.String("role", string(event.Role)),
		)
		return nil
	})
	dispatcher.Subscribe(events.EventSessionEnded, func(_ context.Context, event events.Event) error {
		logger.Info("session ended",
			zap.String("subject_id", event.SubjectID),
			zap.String("reason", string(event.Reason)),
		)
		return nil
	})

	metrics := observability.NewMetrics()
	client := backend.New(cfg.Backend, store, logger, metrics)
	resolver := auth.NewResolver(store, dispatcher, logger)
	guard := auth.NewGuard(resolver)

	renderer, err := views.New()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	web.RegisterMiddlewares(app, web.MiddlewareConfig{
		Logger:   logger,
		Metrics:  metrics,
		Renderer: renderer,
		Resolver: resolver,
		Timeout:  cfg.App.RequestTimeout(),
	})

	web.RegisterRoutes(app, web.RouteConfig{
		Home:     handlers.NewHomeHandler(client, renderer),
		Auth:     handlers.NewAuthHandler(client, resolver, renderer, logger),
		Vacantes: handlers.NewVacantesHandler(client, renderer, logger),
		Profile:  handlers.NewProfileHandler(client, renderer),
		Guard:    guard,
	})

	go func() {
		logger.Info("portal listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newCredentialStore selects the credential slot backend. The file store is
// the default and the closest analog to a browser profile.
func newCredentialStore(cfg *config.Config, logger *zap.Logger) credstore.Store {
	switch cfg.Credentials.Backend {
	case config.CredStoreRedis:
		return credstore.NewRedisStore(cfg.Redis, logger)
	case config.CredStoreMemory:
		return credstore.NewMemStore()
	default:
		return credstore.NewFileStore(cfg.Credentials.FilePath)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
