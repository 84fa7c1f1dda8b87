package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/sheet"
)

// Repository is a GORM-backed store shared by both sheet kinds; the
// record type picks the table via its TableName.
type Repository[T any, PT interface {
	*T
	sheet.Record
}] struct {
	db *gorm.DB
}

func NewRepository[T any, PT interface {
	*T
	sheet.Record
}](db *gorm.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

func (r *Repository[T, PT]) Create(rec PT) error {
	if err := r.db.Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *Repository[T, PT]) GetByID(id int64) (PT, error) {
	var rec T
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSubmissionNotFound
		}
		return nil, err
	}
	return PT(&rec), nil
}

func (r *Repository[T, PT]) List(limit, offset int) ([]PT, error) {
	var recs []T
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	out := make([]PT, len(recs))
	for i := range recs {
		out[i] = PT(&recs[i])
	}
	return out, nil
}

func (r *Repository[T, PT]) Update(rec PT) error {
	if err := r.db.Save(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *Repository[T, PT]) Delete(id int64) error {
	var rec T
	return r.db.Delete(&rec, id).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
