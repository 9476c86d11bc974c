// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
//   - TestifyMockAccountStore and TestifyMockCourseStore record calls with
//     testify/mock for precise expectation checks.
//   - MemoryStore is a working in-memory store pair for handler and router
//     tests that need realistic persistence without a database.
//   - MockPasswordVerifier and MockPasswordHasher stand in for bcrypt.
//
// Usage:
//
//	mem := mocks.NewMemoryStore()
//	svc := service.NewCourseService(mem.Courses(), nil)
package mocks
