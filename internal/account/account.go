package account

import (
	"time"

	"github.com/nardosm/ik-registry/internal"
)

// Account is a registered user of the portal. The password hash never
// leaves the service: it is excluded from JSON serialization.
type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"column:full_name;not null"`
	Phone        string    `json:"phone" gorm:"column:phone;uniqueIndex;not null"`
	Email        string    `json:"email,omitempty" gorm:"column:email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"column:role;not null;default:user"`
	PhotoURL     string    `json:"photo_url,omitempty" gorm:"column:photo_url"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) IsAdmin() bool {
	return a.Role == internal.RoleAdmin
}

// New builds an unsaved account with role "user". Role escalation only
// happens through an admin update or the seed command.
func New(fullName, phone, email, photoURL, passwordHash string) *Account {
	now := time.Now()
	return &Account{
		FullName:     fullName,
		Phone:        phone,
		Email:        email,
		PhotoURL:     photoURL,
		PasswordHash: passwordHash,
		Role:         internal.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
