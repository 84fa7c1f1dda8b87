package department

import (
	"time"
)

// Department categories, fixed three-value enum.
const (
	CategoryInnovation = "indigenous-innovation"
	CategoryResearch   = "indigenous-research"
	CategoryTechnology = "indigenous-technology"
)

// Review statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Department is a community-submitted knowledge registration. It may be
// anonymous: OwnerAccountID is nil when the submitter was not logged in,
// and such records are mutable only by admins. The (email, title) pair
// is unique so the same claim cannot be registered twice.
type Department struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	OwnerAccountID *int64    `json:"owner_account_id,omitempty" gorm:"column:owner_account_id;index"`
	FullName       string    `json:"full_name" gorm:"column:full_name;not null"`
	Email          string    `json:"email" gorm:"column:email;not null;uniqueIndex:idx_departments_email_title"`
	Title          string    `json:"title" gorm:"column:title;not null;uniqueIndex:idx_departments_email_title"`
	Description    string    `json:"description" gorm:"column:description"`
	Category       string    `json:"category" gorm:"column:category;not null"`
	FileURL        string    `json:"file_url,omitempty" gorm:"column:file_url"`
	Status         string    `json:"status" gorm:"column:status;not null;default:pending"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryInnovation, CategoryResearch, CategoryTechnology:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
