package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/platform/logger"
	"github.com/phrazzld/courses-api/internal/service/auth"
	"github.com/phrazzld/courses-api/internal/store"
)

// NewCourseInput carries the fields a client supplies to create a course.
type NewCourseInput struct {
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// CourseService provides course operations.
type CourseService interface {
	// ListCourses returns every course with its owner.
	ListCourses(ctx context.Context) ([]*domain.Course, error)

	// GetCourse returns one course with its owner.
	// Returns store.ErrCourseNotFound if it does not exist.
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// CreateCourse creates a course owned by actor.
	CreateCourse(ctx context.Context, actor *domain.Account, input NewCourseInput) (*domain.Course, error)

	// UpdateCourse applies patch to a course owned by actor.
	// Returns store.ErrCourseNotFound, ErrNotOwned or a *domain.ValidationError.
	UpdateCourse(ctx context.Context, actor *domain.Account, id uuid.UUID, patch domain.CoursePatch) error

	// DeleteCourse removes a course owned by actor.
	// Returns store.ErrCourseNotFound or ErrNotOwned.
	DeleteCourse(ctx context.Context, actor *domain.Account, id uuid.UUID) error
}

type courseServiceImpl struct {
	courses store.CourseStore
	logger  *slog.Logger
}

// NewCourseService creates a CourseService.
func NewCourseService(courses store.CourseStore, logger *slog.Logger) CourseService {
	if courses == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("course store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &courseServiceImpl{
		courses: courses,
		logger:  logger.With("component", "course_service"),
	}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list courses", "error", err)
		return nil, NewServiceError("list courses", err)
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get course",
			"error", err,
			"course_id", id)
		return nil, NewServiceError("get course", err)
	}
	return course, nil
}

func (s *courseServiceImpl) CreateCourse(
	ctx context.Context,
	actor *domain.Account,
	input NewCourseInput,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var ownerID *uuid.UUID
	if actor != nil {
		id := actor.ID
		ownerID = &id
	}

	course, err := domain.NewCourse(input.Title, input.Description, input.EstimatedTime, input.MaterialsNeeded, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		log.Error("failed to save course", "error", err)
		return nil, NewServiceError("create course", err)
	}

	if actor != nil {
		course.Owner = actor.Owner()
	}

	log.Info("course created", "course_id", course.ID)
	return course, nil
}

func (s *courseServiceImpl) UpdateCourse(
	ctx context.Context,
	actor *domain.Account,
	id uuid.UUID,
	patch domain.CoursePatch,
) error {
	course, err := s.loadOwned(ctx, actor, id, "update course")
	if err != nil {
		return err
	}

	if patch.Empty() {
		logger.FromContextOrDefault(ctx, s.logger).Debug("empty course patch, nothing to update", "course_id", id)
		return nil
	}

	if err := course.Apply(patch); err != nil {
		return err
	}

	if err := s.courses.Update(ctx, course); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update course",
			"error", err,
			"course_id", id)
		return NewServiceError("update course", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("course updated", "course_id", id)
	return nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, actor *domain.Account, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actor, id, "delete course"); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete course",
			"error", err,
			"course_id", id)
		return NewServiceError("delete course", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("course deleted", "course_id", id)
	return nil
}

// loadOwned fetches a course and checks that actor may mutate it.
// A missing course is reported before an ownership failure.
func (s *courseServiceImpl) loadOwned(
	ctx context.Context,
	actor *domain.Account,
	id uuid.UUID,
	operation string,
) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, err
		}
		log.Error("failed to load course", "error", err, "course_id", id)
		return nil, NewServiceError(operation, err)
	}

	if !auth.CanMutate(actor, course) {
		log.Warn("course mutation denied", "course_id", id, "operation", operation)
		return nil, ErrNotOwned
	}

	return course, nil
}
