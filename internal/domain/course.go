package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Course validation messages.
const (
	MsgTitleRequired       = "Please enter a title for your new course!"
	MsgDescriptionRequired = "Please enter a description for your new course!"
)

// Course is a unit of teaching material. OwnerID is nullable: a course may
// exist without an owner, in which case nobody is allowed to mutate it.
type Course struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EstimatedTime   *string    `json:"estimatedTime"`
	MaterialsNeeded *string    `json:"materialsNeeded"`
	OwnerID         *uuid.UUID `json:"userId"`
	Owner           *Owner     `json:"User"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewCourse creates an unsaved Course with a fresh ID and timestamps.
// Returns a *ValidationError if title or description is empty.
func NewCourse(
	title, description string,
	estimatedTime, materialsNeeded *string,
	ownerID *uuid.UUID,
) (*Course, error) {
	now := time.Now().UTC()
	course := &Course{
		ID:              uuid.New(),
		Title:           title,
		Description:     description,
		EstimatedTime:   estimatedTime,
		MaterialsNeeded: materialsNeeded,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return course, nil
}

// Validate checks that title and description are present and not blank.
func (c *Course) Validate() error {
	verr := &ValidationError{}
	if isBlank(c.Title) {
		verr.Add(MsgTitleRequired)
	}
	if isBlank(c.Description) {
		verr.Add(MsgDescriptionRequired)
	}
	return verr.ErrOrNil()
}

// Apply merges a partial update into the course. Fields absent from the
// patch are left untouched. The course is only modified when the merged
// result is valid.
func (c *Course) Apply(p CoursePatch) error {
	updated := *c

	if p.Title.Set {
		updated.Title = p.Title.Value
	}
	if p.Description.Set {
		updated.Description = p.Description.Value
	}
	if p.EstimatedTime.Set {
		updated.EstimatedTime = p.EstimatedTime.Ptr()
	}
	if p.MaterialsNeeded.Set {
		updated.MaterialsNeeded = p.MaterialsNeeded.Ptr()
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*c = updated
	return nil
}

// CoursePatch is a partial course update as sent by clients.
type CoursePatch struct {
	Title           PatchField `json:"title"`
	Description     PatchField `json:"description"`
	EstimatedTime   PatchField `json:"estimatedTime"`
	MaterialsNeeded PatchField `json:"materialsNeeded"`
}

// Empty reports whether the patch carries no fields at all.
func (p CoursePatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.EstimatedTime.Set && !p.MaterialsNeeded.Set
}

// PatchField is a string that distinguishes a missing JSON key (Set false)
// from an explicit null (Set true, Null true) and from a value.
type PatchField struct {
	Set   bool
	Null  bool
	Value string
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (f *PatchField) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		f.Value = ""
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Ptr returns nil for a null field and a pointer to the value otherwise.
func (f PatchField) Ptr() *string {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}
