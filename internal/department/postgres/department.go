package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/department"
)

// DepartmentRepository implements department.Repository using GORM.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(dep *department.Department) error {
	if err := r.db.Create(dep).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var dep department.Department
	err := r.db.Where("id = ?", id).First(&dep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &dep, nil
}

func (r *DepartmentRepository) List(limit, offset int) ([]*department.Department, error) {
	var deps []*department.Department
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&deps).Error
	return deps, err
}

func (r *DepartmentRepository) ListByCategory(category string, limit, offset int) ([]*department.Department, error) {
	var deps []*department.Department
	err := r.db.Where("category = ?", category).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&deps).Error
	return deps, err
}

func (r *DepartmentRepository) Update(dep *department.Department) error {
	if err := r.db.Save(dep).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Delete(&department.Department{}, id).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
