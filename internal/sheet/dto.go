package sheet

import (
	"strings"

	"github.com/nardosm/ik-registry/internal"
)

// CreateSheetOneDTO is the innovator profile payload. FileURL is set by
// the handler after the blob store accepts the upload.
type CreateSheetOneDTO struct {
	FullName             string `json:"full_name"`
	Sex                  string `json:"sex"`
	Phone                string `json:"phone"`
	EducationLevel       string `json:"education_level"`
	Region               string `json:"region"`
	Zone                 string `json:"zone"`
	Woreda               string `json:"woreda"`
	KnowledgeTitle       string `json:"knowledge_title"`
	KnowledgeDescription string `json:"knowledge_description"`
	FileURL              string `json:"-"`
}

func (d *CreateSheetOneDTO) Validate() error {
	var fields []internal.FieldError

	if strings.TrimSpace(d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if !IsValidSex(d.Sex) {
		fields = append(fields, internal.FieldError{
			Field: "sex", Message: "sex must be male or female", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if strings.TrimSpace(d.KnowledgeTitle) == "" {
		fields = append(fields, internal.FieldError{
			Field: "knowledge_title", Message: "knowledge_title is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if len(d.KnowledgeDescription) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "knowledge_description", Message: "knowledge_description must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// UpdateSheetOneDTO is a partial update; nil means "keep stored value".
type UpdateSheetOneDTO struct {
	FullName             *string `json:"full_name,omitempty"`
	Sex                  *string `json:"sex,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	EducationLevel       *string `json:"education_level,omitempty"`
	Region               *string `json:"region,omitempty"`
	Zone                 *string `json:"zone,omitempty"`
	Woreda               *string `json:"woreda,omitempty"`
	KnowledgeTitle       *string `json:"knowledge_title,omitempty"`
	KnowledgeDescription *string `json:"knowledge_description,omitempty"`
	FileURL              *string `json:"file_url,omitempty"`
}

func (d *UpdateSheetOneDTO) Validate() error {
	var fields []internal.FieldError

	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		fields = append(fields, internal.FieldError{
			Field: "full_name", Message: "full_name cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Sex != nil && !IsValidSex(*d.Sex) {
		fields = append(fields, internal.FieldError{
			Field: "sex", Message: "sex must be male or female", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.KnowledgeTitle != nil && strings.TrimSpace(*d.KnowledgeTitle) == "" {
		fields = append(fields, internal.FieldError{
			Field: "knowledge_title", Message: "knowledge_title cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.KnowledgeDescription != nil && len(*d.KnowledgeDescription) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "knowledge_description", Message: "knowledge_description must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// Apply merges the supplied fields into the stored record.
func (d *UpdateSheetOneDTO) Apply(rec *SheetOne) {
	if d.FullName != nil {
		rec.FullName = strings.TrimSpace(*d.FullName)
	}
	if d.Sex != nil {
		rec.Sex = *d.Sex
	}
	if d.Phone != nil {
		rec.Phone = strings.TrimSpace(*d.Phone)
	}
	if d.EducationLevel != nil {
		rec.EducationLevel = *d.EducationLevel
	}
	if d.Region != nil {
		rec.Region = *d.Region
	}
	if d.Zone != nil {
		rec.Zone = *d.Zone
	}
	if d.Woreda != nil {
		rec.Woreda = *d.Woreda
	}
	if d.KnowledgeTitle != nil {
		rec.KnowledgeTitle = strings.TrimSpace(*d.KnowledgeTitle)
	}
	if d.KnowledgeDescription != nil {
		rec.KnowledgeDescription = *d.KnowledgeDescription
	}
	if d.FileURL != nil {
		rec.FileURL = *d.FileURL
	}
}

// CreateSheetTwoDTO is the knowledge assessment payload.
type CreateSheetTwoDTO struct {
	Title          string `json:"title"`
	Sector         string `json:"sector"`
	DurationYears  int    `json:"duration_years"`
	TransferMethod string `json:"transfer_method"`
	UsageStatus    string `json:"usage_status"`
	Remark         string `json:"remark"`
	FileURL        string `json:"-"`
}

func (d *CreateSheetTwoDTO) Validate() error {
	var fields []internal.FieldError

	if strings.TrimSpace(d.Title) == "" {
		fields = append(fields, internal.FieldError{
			Field: "title", Message: "title is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if strings.TrimSpace(d.Sector) == "" {
		fields = append(fields, internal.FieldError{
			Field: "sector", Message: "sector is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.DurationYears < 0 {
		fields = append(fields, internal.FieldError{
			Field: "duration_years", Message: "duration_years cannot be negative", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if len(d.Remark) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "remark", Message: "remark must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

// UpdateSheetTwoDTO is a partial update; nil means "keep stored value".
type UpdateSheetTwoDTO struct {
	Title          *string `json:"title,omitempty"`
	Sector         *string `json:"sector,omitempty"`
	DurationYears  *int    `json:"duration_years,omitempty"`
	TransferMethod *string `json:"transfer_method,omitempty"`
	UsageStatus    *string `json:"usage_status,omitempty"`
	Remark         *string `json:"remark,omitempty"`
	FileURL        *string `json:"file_url,omitempty"`
}

func (d *UpdateSheetTwoDTO) Validate() error {
	var fields []internal.FieldError

	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		fields = append(fields, internal.FieldError{
			Field: "title", Message: "title cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Sector != nil && strings.TrimSpace(*d.Sector) == "" {
		fields = append(fields, internal.FieldError{
			Field: "sector", Message: "sector cannot be empty", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.DurationYears != nil && *d.DurationYears < 0 {
		fields = append(fields, internal.FieldError{
			Field: "duration_years", Message: "duration_years cannot be negative", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Remark != nil && len(*d.Remark) > 5000 {
		fields = append(fields, internal.FieldError{
			Field: "remark", Message: "remark must not exceed 5000 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}

	if len(fields) > 0 {
		return internal.NewFieldValidationError(fields...)
	}
	return nil
}

func (d *UpdateSheetTwoDTO) Apply(rec *SheetTwo) {
	if d.Title != nil {
		rec.Title = strings.TrimSpace(*d.Title)
	}
	if d.Sector != nil {
		rec.Sector = strings.TrimSpace(*d.Sector)
	}
	if d.DurationYears != nil {
		rec.DurationYears = *d.DurationYears
	}
	if d.TransferMethod != nil {
		rec.TransferMethod = *d.TransferMethod
	}
	if d.UsageStatus != nil {
		rec.UsageStatus = *d.UsageStatus
	}
	if d.Remark != nil {
		rec.Remark = *d.Remark
	}
	if d.FileURL != nil {
		rec.FileURL = *d.FileURL
	}
}
