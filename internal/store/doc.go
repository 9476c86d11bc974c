// Package store defines the persistence contracts for accounts and courses.
// The PostgreSQL implementations live in platform/postgres; tests use the
// doubles in internal/mocks.
package store
