package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/botofarm/internal/leases/http"
	"github.com/aussiebroadwan/botofarm/internal/leases/service"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/internal/leases/store/drivers/postgres"
	"github.com/aussiebroadwan/botofarm/internal/leases/store/drivers/sqlite"
	"github.com/aussiebroadwan/botofarm/pkg/cryptox"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"
	"github.com/juju/clock"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the account store, the lease manager and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	leases *service.LeaseManager

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "botofarm",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Fail at startup rather than on the first registration
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	ttl, bounded := app.cfg.LeasePolicy.TTL()
	app.logger.Info("botofarm starting",
		"addr", app.server.Addr,
		"version", BuildVersion,
		"leases_expire", bounded,
		"lease_ttl", ttl,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down botofarm...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("botofarm stopped")
	return nil
}

// initDatabase opens the store named by DatabaseURL and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, driver, err := openStore(ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

// openStore picks the driver from the URL scheme. SQLAlchemy-style URLs
// (sqlite:///path, postgresql+asyncpg://...) are accepted as well.
func openStore(ctx context.Context, url string) (store.Store, string, error) {
	url = strings.TrimSpace(url)

	if scheme, rest, ok := strings.Cut(url, "://"); ok {
		base, _, _ := strings.Cut(scheme, "+")
		switch base {
		case "postgres", "postgresql":
			db, err := postgres.NewStore(ctx, "postgres://"+rest)
			return db, "postgres", err
		case "sqlite":
			url = "file:" + strings.TrimPrefix(rest, "/")
		}
	}

	db, err := sqlite.NewStore(url)
	return db, "sqlite", err
}

func (app *Application) initServices() {
	app.leases = &service.LeaseManager{
		Store:  app.db,
		Policy: app.cfg.LeasePolicy,
		Clock:  clock.WallClock,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.APIPrefix,
		BuildVersion,
		app.db,
		app.logger,
		httpx.CORSConfig{AllowedOrigins: app.cfg.CORSAllowedOrigins},
	)
	router.LeaseManager = app.leases
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort(app.cfg.Host, strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
