package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/store"
)

// MemoryStore is an in-memory implementation of both store.AccountStore and
// store.CourseStore. Reads join courses to their owners the same way the
// PostgreSQL stores do. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]domain.Account
	courses  map[uuid.UUID]domain.Course
	order    []uuid.UUID
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[uuid.UUID]domain.Account),
		courses:  make(map[uuid.UUID]domain.Course),
	}
}

// Accounts returns the store.AccountStore view of m.
func (m *MemoryStore) Accounts() store.AccountStore { return memoryAccounts{m} }

// Courses returns the store.CourseStore view of m.
func (m *MemoryStore) Courses() store.CourseStore { return memoryCourses{m} }

type memoryAccounts struct{ m *MemoryStore }

func (a memoryAccounts) Create(_ context.Context, account *domain.Account) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	for _, existing := range a.m.accounts {
		if existing.EmailAddress == account.EmailAddress {
			return store.ErrEmailExists
		}
	}
	stored := *account
	stored.Password = ""
	a.m.accounts[account.ID] = stored
	return nil
}

func (a memoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	for _, existing := range a.m.accounts {
		if existing.EmailAddress == email {
			found := existing
			return &found, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

func (a memoryAccounts) WithTx(*sql.Tx) store.AccountStore { return a }

type memoryCourses struct{ m *MemoryStore }

func (c memoryCourses) Create(_ context.Context, course *domain.Course) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	if course.OwnerID != nil {
		if _, ok := c.m.accounts[*course.OwnerID]; !ok {
			return store.ErrInvalidEntity
		}
	}
	stored := *course
	stored.Owner = nil
	c.m.courses[course.ID] = stored
	c.m.order = append(c.m.order, course.ID)
	return nil
}

func (c memoryCourses) List(_ context.Context) ([]*domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	courses := make([]*domain.Course, 0, len(c.m.courses))
	for _, id := range c.m.order {
		if course, ok := c.m.courses[id]; ok {
			courses = append(courses, c.m.withOwner(course))
		}
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].CreatedAt.Before(courses[j].CreatedAt)
	})
	return courses, nil
}

func (c memoryCourses) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	course, ok := c.m.courses[id]
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return c.m.withOwner(course), nil
}

func (c memoryCourses) Update(_ context.Context, course *domain.Course) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	existing, ok := c.m.courses[course.ID]
	if !ok {
		return store.ErrCourseNotFound
	}
	existing.Title = course.Title
	existing.Description = course.Description
	existing.EstimatedTime = course.EstimatedTime
	existing.MaterialsNeeded = course.MaterialsNeeded
	existing.UpdatedAt = course.UpdatedAt
	c.m.courses[course.ID] = existing
	return nil
}

func (c memoryCourses) Delete(_ context.Context, id uuid.UUID) error {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	if _, ok := c.m.courses[id]; !ok {
		return store.ErrCourseNotFound
	}
	delete(c.m.courses, id)
	return nil
}

// withOwner must be called with mu held.
func (m *MemoryStore) withOwner(course domain.Course) *domain.Course {
	course.Owner = nil
	if course.OwnerID != nil {
		if owner, ok := m.accounts[*course.OwnerID]; ok {
			course.Owner = owner.Owner()
		}
	}
	return &course
}
