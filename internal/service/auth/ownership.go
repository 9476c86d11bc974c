package auth

import "github.com/phrazzld/courses-api/internal/domain"

// CanMutate reports whether actor may update or delete course. Only the
// account whose email address matches the course owner's is allowed; a
// course without an owner can't be mutated by anyone.
func CanMutate(actor *domain.Account, course *domain.Course) bool {
	if actor == nil || course == nil || course.Owner == nil {
		return false
	}
	return course.Owner.EmailAddress == actor.EmailAddress
}
