package account

import (
	"strings"

	"github.com/nardosm/ik-registry/internal"
)

// UpdateAccountDTO is a partial update: nil pointer means "leave the
// stored value alone". A supplied password is re-hashed before storage.
type UpdateAccountDTO struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (d *UpdateAccountDTO) Validate() error {
	var fields []internal.FieldError

	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Password != nil && len(*d.Password) < 6 {
		fields = append(fields, internal.FieldError{
			Field: "password", Message: "password must be at least 6 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Email != nil && *d.Email != "" && !strings.Contains(*d.Email, "@") {
		fields = append(fields, internal.FieldError{
			Field: "email", Message: "email is malformed", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Role != nil && *d.Role != internal.RoleUser && *d.Role != internal.RoleAdmin {
		fields = append(fields, internal.FieldError{
			Field: "role", Message: "role must be user or admin", Code: string(internal.ErrCodeInvalidRole),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}
