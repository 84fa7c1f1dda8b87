package auth

import (
	"strings"
	"unicode"

	"github.com/nardosm/ik-registry/internal"
)

// RegisterDTO is the transport shape for account signup.
type RegisterDTO struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (d *RegisterDTO) Validate() error {
	var fields []internal.FieldError

	if strings.TrimSpace(d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if err := validatePhone(d.Phone); err != nil {
		fields = append(fields, *err)
	}
	if len(d.Password) < 6 {
		fields = append(fields, internal.FieldError{
			Field: "password", Message: "password must be at least 6 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		fields = append(fields, internal.FieldError{
			Field: "email", Message: "email is malformed", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

func (d *LoginDTO) Validate() error {
	var fields []internal.FieldError

	if strings.TrimSpace(d.Phone) == "" {
		fields = append(fields, internal.FieldError{
			Field: "phone", Message: "phone is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Password == "" {
		fields = append(fields, internal.FieldError{
			Field: "password", Message: "password is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// validatePhone accepts digits with an optional leading +, 9 to 15
// characters. Normalization beyond trimming is left to the client.
func validatePhone(phone string) *internal.FieldError {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return &internal.FieldError{
			Field: "phone", Message: "phone is required", Code: string(internal.ErrCodeValidationFailed),
		}
	}

	digits := phone
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if len(digits) < 9 || len(digits) > 15 {
		return &internal.FieldError{
			Field: "phone", Message: "phone must be 9 to 15 digits", Code: string(internal.ErrCodeInvalidPhone),
		}
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return &internal.FieldError{
				Field: "phone", Message: "phone may contain only digits and a leading +", Code: string(internal.ErrCodeInvalidPhone),
			}
		}
	}
	return nil
}
