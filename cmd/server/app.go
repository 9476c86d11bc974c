package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/courses-api/internal/api"
	"github.com/phrazzld/courses-api/internal/api/middleware"
	"github.com/phrazzld/courses-api/internal/config"
	"github.com/phrazzld/courses-api/internal/platform/postgres"
	"github.com/phrazzld/courses-api/internal/service"
	"github.com/phrazzld/courses-api/internal/service/auth"
	"github.com/phrazzld/courses-api/internal/store"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	accountStore store.AccountStore
	courseStore  store.CourseStore

	hasher         *auth.BcryptHasher
	accountService service.AccountService
	courseService  service.CourseService
	authMiddleware *middleware.BasicAuthMiddleware
}

// newApplication wires stores, services and middleware around an open
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.accountStore = postgres.NewPostgresAccountStore(db, logger)
	app.courseStore = postgres.NewPostgresCourseStore(db, logger)

	app.accountService = service.NewAccountService(app.accountStore, app.hasher, db, logger)
	app.courseService = service.NewCourseService(app.courseStore, logger)

	var err error
	app.authMiddleware, err = middleware.NewBasicAuthMiddleware(
		app.accountStore,
		app.hasher,
		app.hasher,
		cfg.Auth.Realm,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}

	logger.Info("Application initialized successfully", "bcrypt_cost", app.hasher.Cost())
	return app, nil
}

// setupRouter builds the HTTP handler tree.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Accounts: api.NewAccountHandler(app.accountService, app.logger),
		Courses:  api.NewCourseHandler(app.courseService, app.logger),
		Auth:     app.authMiddleware,
		Logger:   app.logger,
		Ping: func(r *http.Request) error {
			return app.db.PingContext(r.Context())
		},
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
