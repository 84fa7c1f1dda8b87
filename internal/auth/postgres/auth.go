package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/account"
	"github.com/nardosm/ik-registry/internal/auth"
)

// Repository implements auth.AccountRepository and auth.TokenRepository
// using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateAccount(acc *account.Account) error {
	if err := r.db.Create(acc).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrPhoneTaken
		}
		return err
	}
	return nil
}

// GetCredentialsByPhone fetches only what password verification needs.
func (r *Repository) GetCredentialsByPhone(phone string) (int64, string, error) {
	var (
		accountID    int64
		passwordHash string
	)

	row := r.db.Raw(`SELECT id, password_hash FROM accounts WHERE phone = ?`, phone).Row()
	if err := row.Scan(&accountID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", internal.ErrAccountNotFound
		}
		return 0, "", err
	}
	return accountID, passwordHash, nil
}

func (r *Repository) GetAccountByID(accountID int64) (*account.Account, error) {
	var acc account.Account
	err := r.db.Where("id = ?", accountID).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// Revoke denylists a JTI and prunes rows whose tokens have expired
// anyway, so the table stays proportional to live sessions.
func (r *Repository) Revoke(jti string, expiresAt time.Time) error {
	if err := r.db.Create(&auth.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}).Error; err != nil {
		// revoking twice is not an error
		if isDuplicateKey(err) {
			return nil
		}
		return err
	}

	r.db.Where("expires_at < ?", time.Now()).Delete(&auth.RevokedToken{})
	return nil
}

func (r *Repository) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&auth.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// isDuplicateKey matches unique-index violations across the drivers we
// run against (postgres in production, sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
