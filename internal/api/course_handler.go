package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/courses-api/internal/api/middleware"
	"github.com/phrazzld/courses-api/internal/api/shared"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/service"
	"github.com/phrazzld/courses-api/internal/store"
)

// CourseHandler handles the /courses endpoints.
type CourseHandler struct {
	courses service.CourseService
	logger  *slog.Logger
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(courses service.CourseService, logger *slog.Logger) *CourseHandler {
	if courses == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("course service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{
		courses: courses,
		logger:  logger.With("component", "course_handler"),
	}
}

// List handles GET /api/courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.ListCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, coursesToResponse(courses))
}

// Get handles GET /api/courses/{id}. An unknown or unparseable id yields
// 200 with a null body.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := courseIDFromPath(r)
	if !ok {
		shared.RespondWithJSON(w, r, http.StatusOK, nil)
		return
	}

	course, err := h.courses.GetCourse(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, nil)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, courseToResponse(course))
}

// Create handles POST /api/courses. The new course is owned by the
// authenticated account.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusUnauthorized)
		return
	}

	var req CreateCourseRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError(msgInvalidJSON))
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, domain.NewValidationError(requestValidationMessages(err)...))
		return
	}

	course, err := h.courses.CreateCourse(r.Context(), actor, service.NewCourseInput{
		Title:           *req.Title,
		Description:     *req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondCreated(w, "api/courses/"+course.ID.String())
}

// Update handles PUT /api/courses/{id}.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusUnauthorized)
		return
	}

	id, ok := courseIDFromPath(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusNotFound)
		return
	}

	var patch UpdateCourseRequest
	if err := shared.DecodeJSON(w, r, &patch); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, domain.NewValidationError(msgInvalidJSON))
		return
	}

	if err := h.courses.UpdateCourse(r.Context(), actor, id, patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithStatus(w, http.StatusNoContent)
}

// Delete handles DELETE /api/courses/{id}.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusUnauthorized)
		return
	}

	id, ok := courseIDFromPath(r)
	if !ok {
		shared.RespondWithStatus(w, http.StatusNotFound)
		return
	}

	if err := h.courses.DeleteCourse(r.Context(), actor, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithStatus(w, http.StatusNoContent)
}

func courseIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
