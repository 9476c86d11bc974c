package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/courses-api/internal/domain"
)

// CourseStore defines the interface for course persistence. Every read
// loads the owning account's public projection alongside the course.
type CourseStore interface {
	// Create saves a new course.
	Create(ctx context.Context, course *domain.Course) error

	// List returns all courses with their owners.
	List(ctx context.Context) ([]*domain.Course, error)

	// GetByID retrieves a course and its owner.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// Update overwrites the mutable fields of an existing course.
	// Returns ErrCourseNotFound if the course does not exist.
	Update(ctx context.Context, course *domain.Course) error

	// Delete removes a course permanently.
	// Returns ErrCourseNotFound if the course does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
