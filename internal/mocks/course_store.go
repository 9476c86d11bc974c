package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// TestifyMockCourseStore is a mock of store.CourseStore for use with testify/mock
type TestifyMockCourseStore struct {
	mock.Mock
}

// Create is a mock implementation of store.CourseStore.Create
func (m *TestifyMockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

// List is a mock implementation of store.CourseStore.List
func (m *TestifyMockCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if courses, ok := args.Get(0).([]*domain.Course); ok {
		return courses, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.CourseStore.GetByID
func (m *TestifyMockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if course, ok := args.Get(0).(*domain.Course); ok {
		return course, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.CourseStore.Update
func (m *TestifyMockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

// Delete is a mock implementation of store.CourseStore.Delete
func (m *TestifyMockCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
