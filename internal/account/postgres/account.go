package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/account"
)

// AccountRepository implements account.Repository using GORM.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(id int64) (*account.Account, error) {
	var acc account.Account
	err := r.db.Where("id = ?", id).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) List(limit, offset int) ([]*account.Account, error) {
	var accounts []*account.Account
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Update(acc *account.Account) error {
	return r.db.Save(acc).Error
}

func (r *AccountRepository) Delete(id int64) error {
	return r.db.Delete(&account.Account{}, id).Error
}
