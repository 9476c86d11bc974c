package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/platform/logger"
	"github.com/phrazzld/courses-api/internal/store"
)

// selectCourses loads courses together with the public columns of their
// owner. The password hash is never selected.
const selectCourses = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.user_id,
	       c.created_at, c.updated_at,
	       a.id, a.first_name, a.last_name, a.email_address
	FROM courses c
	LEFT JOIN accounts a ON a.id = c.user_id`

// PostgresCourseStore implements store.CourseStore on PostgreSQL.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a course store on db (a pool or a
// transaction). If logger is nil, the default logger is used.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// Create implements store.CourseStore.Create.
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	const query = `
		INSERT INTO courses (id, title, description, estimated_time, materials_needed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.OwnerID,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("course", "create", MapError(err))
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("course created",
		slog.String("course_id", course.ID.String()))
	return nil
}

// List implements store.CourseStore.List.
func (s *PostgresCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, selectCourses+` ORDER BY c.created_at, c.id`)
	if err != nil {
		return nil, store.NewStoreError("course", "list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, store.NewStoreError("course", "list", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("course", "list", MapError(err))
	}

	return courses, nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx, selectCourses+` WHERE c.id = $1`, id)

	course, err := scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		return nil, store.NewStoreError("course", "get_by_id", MapError(err))
	}

	return course, nil
}

// Update implements store.CourseStore.Update. Ownership is not changed.
func (s *PostgresCourseStore) Update(ctx context.Context, course *domain.Course) error {
	const query = `
		UPDATE courses
		SET title = $2, description = $3, estimated_time = $4, materials_needed = $5, updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.EstimatedTime,
		course.MaterialsNeeded,
		course.UpdatedAt,
	)
	if err != nil {
		return store.NewStoreError("course", "update", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("course updated",
		slog.String("course_id", course.ID.String()))
	return nil
}

// Delete implements store.CourseStore.Delete.
func (s *PostgresCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return store.NewStoreError("course", "delete", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("course deleted",
		slog.String("course_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var (
		course          domain.Course
		estimatedTime   sql.NullString
		materialsNeeded sql.NullString
		ownerRef        uuid.NullUUID
		ownerID         uuid.NullUUID
		firstName       sql.NullString
		lastName        sql.NullString
		emailAddress    sql.NullString
	)

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&estimatedTime,
		&materialsNeeded,
		&ownerRef,
		&course.CreatedAt,
		&course.UpdatedAt,
		&ownerID,
		&firstName,
		&lastName,
		&emailAddress,
	)
	if err != nil {
		return nil, err
	}

	if estimatedTime.Valid {
		course.EstimatedTime = &estimatedTime.String
	}
	if materialsNeeded.Valid {
		course.MaterialsNeeded = &materialsNeeded.String
	}
	if ownerRef.Valid {
		course.OwnerID = &ownerRef.UUID
	}
	if ownerID.Valid {
		course.Owner = &domain.Owner{
			ID:           ownerID.UUID,
			FirstName:    firstName.String,
			LastName:     lastName.String,
			EmailAddress: emailAddress.String,
		}
	}

	return &course, nil
}
