package department

import (
	"strings"

	"github.com/nardosm/ik-registry/internal"
)

// CreateDepartmentDTO is the request payload for registering a
// submission. FileURL is filled in by the handler after the blob store
// has accepted the upload; clients cannot smuggle arbitrary values in.
type CreateDepartmentDTO struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FileURL     string `json:"-"`
}

func (d *CreateDepartmentDTO) Validate() error {
	var fields []internal.FieldError

	if strings.TrimSpace(d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if strings.TrimSpace(d.Email) == "" || !strings.Contains(d.Email, "@") {
		fields = append(fields, internal.FieldError{
			Field: "email", Message: "a valid email is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if strings.TrimSpace(d.Title) == "" {
		fields = append(fields, internal.FieldError{
			Field: "title", Message: "title is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if len(d.Description) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "description", Message: "description must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if !IsValidCategory(d.Category) {
		fields = append(fields, internal.FieldError{
			Field: "category", Message: "category must be one of indigenous-innovation, indigenous-research, indigenous-technology", Code: string(internal.ErrCodeInvalidCategory),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// UpdateDepartmentDTO is a partial update; nil means "keep stored value".
// Status is not updatable here, that goes through the admin status route.
type UpdateDepartmentDTO struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	FileURL     *string `json:"file_url,omitempty"`
}

func (d *UpdateDepartmentDTO) Validate() error {
	var fields []internal.FieldError

	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Email != nil && (strings.TrimSpace(*d.Email) == "" || !strings.Contains(*d.Email, "@")) {
		fields = append(fields, internal.FieldError{
			Field: "email", Message: "email is malformed", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		fields = append(fields, internal.FieldError{
			Field: "title", Message: "title cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Description != nil && len(*d.Description) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "description", Message: "description must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Category != nil && !IsValidCategory(*d.Category) {
		fields = append(fields, internal.FieldError{
			Field: "category", Message: "category must be one of indigenous-innovation, indigenous-research, indigenous-technology", Code: string(internal.ErrCodeInvalidCategory),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// UpdateStatusDTO is the admin review action.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() error {
	if d.Status != StatusApproved && d.Status != StatusRejected {
		return internal.NewValidationError("status must be approved or rejected", internal.ErrCodeInvalidStatus)
	}
	return nil
}
