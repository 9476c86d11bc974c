package api

import (
	"github.com/google/uuid"

	"github.com/phrazzld/courses-api/internal/domain"
)

// CreateAccountRequest is the payload for POST /api/users. Fields are
// pointers so a missing key can be told apart from an empty string.
type CreateAccountRequest struct {
	FirstName    *string `json:"firstName"    validate:"required,notblank"`
	LastName     *string `json:"lastName"     validate:"required,notblank"`
	EmailAddress *string `json:"emailAddress" validate:"required,email"`
	Password     *string `json:"password"     validate:"required,notblank,max=72"`
}

// CurrentAccountResponse is the body of GET /api/users.
type CurrentAccountResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// CreateCourseRequest is the payload for POST /api/courses. There is no
// userId field: courses belong to their creator, and a userId key of any
// type in the body is skipped by the decoder.
type CreateCourseRequest struct {
	Title           *string `json:"title"           validate:"required,notblank"`
	Description     *string `json:"description"     validate:"required,notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// UpdateCourseRequest is the payload for PUT /api/courses/{id}. Only the
// keys present in the body are changed.
type UpdateCourseRequest = domain.CoursePatch

// OwnerResponse is the public projection of a course owner.
type OwnerResponse struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
}

// CourseResponse is a course as returned by the list and get endpoints.
// User is null for ownerless courses.
type CourseResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	EstimatedTime   *string        `json:"estimatedTime"`
	MaterialsNeeded *string        `json:"materialsNeeded"`
	UserID          *uuid.UUID     `json:"userId"`
	User            *OwnerResponse `json:"User"`
}

func currentAccountToResponse(account *domain.Account) CurrentAccountResponse {
	return CurrentAccountResponse{
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		EmailAddress: account.EmailAddress,
	}
}

func courseToResponse(course *domain.Course) CourseResponse {
	resp := CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
		UserID:          course.OwnerID,
	}
	if course.Owner != nil {
		resp.User = &OwnerResponse{
			ID:           course.Owner.ID,
			FirstName:    course.Owner.FirstName,
			LastName:     course.Owner.LastName,
			EmailAddress: course.Owner.EmailAddress,
		}
	}
	return resp
}

func coursesToResponse(courses []*domain.Course) []CourseResponse {
	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, courseToResponse(course))
	}
	return resp
}
