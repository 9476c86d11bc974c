// Package service implements the account and course operations used by the
// HTTP handlers. Services own business rules (validation, password hashing,
// ownership checks) and delegate persistence to the store interfaces.
//
// Expected conditions are returned as sentinel or typed errors so callers can
// branch with errors.Is and errors.As:
//   - store.ErrEmailExists for a taken email address
//   - store.ErrCourseNotFound for a missing course
//   - ErrNotOwned when the actor may not change a course
//   - *domain.ValidationError for rejected input
//
// Anything else is wrapped in a *ServiceError.
package service
