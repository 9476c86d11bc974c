package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/courses-api/internal/api/middleware"
	"github.com/phrazzld/courses-api/internal/api/shared"
)

// RouterDeps holds everything NewRouter needs.
type RouterDeps struct {
	Accounts *AccountHandler
	Courses  *CourseHandler
	Auth     *middleware.BasicAuthMiddleware
	Logger   *slog.Logger
	// Ping reports database health for /health. Optional.
	Ping func(r *http.Request) error
}

// NewRouter builds the HTTP routing tree.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusNotFound, map[string]string{"message": "Route Not Found"})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(req); err != nil {
				shared.RespondWithErrorAndLog(w, req, http.StatusServiceUnavailable, "database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", deps.Accounts.Create)
		r.Get("/courses", deps.Courses.List)
		r.Get("/courses/{id}", deps.Courses.Get)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Authenticate)

			r.Get("/users", deps.Accounts.GetCurrent)
			r.Post("/courses", deps.Courses.Create)
			r.Put("/courses/{id}", deps.Courses.Update)
			r.Delete("/courses/{id}", deps.Courses.Delete)
		})
	})

	return r
}
