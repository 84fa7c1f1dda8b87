package sheet

import (
	"time"
)

// Sexes accepted on the innovator profile sheet.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Record is what the shared service needs from either sheet kind:
// identity, ownership and timestamp bookkeeping.
type Record interface {
	RecordID() int64
	OwnerID() int64
	Touch(now time.Time)
}

// SheetOne is the innovator profile sheet. Records are always owned by
// the authenticated submitter; (owner, knowledge_title) is unique so one
// account cannot file the same knowledge twice.
type SheetOne struct {
	ID                   int64     `json:"id" gorm:"primaryKey"`
	OwnerAccountID       int64     `json:"owner_account_id" gorm:"column:owner_account_id;not null;uniqueIndex:idx_sheet_one_owner_title"`
	FullName             string    `json:"full_name" gorm:"column:full_name;not null"`
	Sex                  string    `json:"sex" gorm:"column:sex;not null"`
	Phone                string    `json:"phone" gorm:"column:phone"`
	EducationLevel       string    `json:"education_level" gorm:"column:education_level"`
	Region               string    `json:"region" gorm:"column:region"`
	Zone                 string    `json:"zone" gorm:"column:zone"`
	Woreda               string    `json:"woreda" gorm:"column:woreda"`
	KnowledgeTitle       string    `json:"knowledge_title" gorm:"column:knowledge_title;not null;uniqueIndex:idx_sheet_one_owner_title"`
	KnowledgeDescription string    `json:"knowledge_description" gorm:"column:knowledge_description"`
	FileURL              string    `json:"file_url,omitempty" gorm:"column:file_url"`
	CreatedAt            time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SheetOne) TableName() string { return "sheet_one_records" }

func (s *SheetOne) RecordID() int64    { return s.ID }
func (s *SheetOne) OwnerID() int64     { return s.OwnerAccountID }
func (s *SheetOne) Touch(now time.Time) { s.UpdatedAt = now }

// SheetTwo is the knowledge assessment sheet, unique per (owner, title).
type SheetTwo struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OwnerAccountID int64     `json:"owner_account_id" gorm:"column:owner_account_id;not null;uniqueIndex:idx_sheet_two_owner_title"`
	Title          string    `json:"title" gorm:"column:title;not null;uniqueIndex:idx_sheet_two_owner_title"`
	Sector         string    `json:"sector" gorm:"column:sector;not null"`
	DurationYears  int       `json:"duration_years" gorm:"column:duration_years"`
	TransferMethod string    `json:"transfer_method" gorm:"column:transfer_method"`
	UsageStatus    string    `json:"usage_status" gorm:"column:usage_status"`
	Remark         string    `json:"remark" gorm:"column:remark"`
	FileURL        string    `json:"file_url,omitempty" gorm:"column:file_url"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SheetTwo) TableName() string { return "sheet_two_records" }

func (s *SheetTwo) RecordID() int64    { return s.ID }
func (s *SheetTwo) OwnerID() int64     { return s.OwnerAccountID }
func (s *SheetTwo) Touch(now time.Time) { s.UpdatedAt = now }

func IsValidSex(sex string) bool {
	return sex == SexMale || sex == SexFemale
}
