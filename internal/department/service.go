package department

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nardosm/ik-registry/internal"
)

// Repository defines the data access methods for department submissions.
type Repository interface {
	Create(dep *Department) error
	GetByID(id int64) (*Department, error)
	List(limit, offset int) ([]*Department, error)
	ListByCategory(category string, limit, offset int) ([]*Department, error)
	Update(dep *Department) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a submission. ownerAccountID is nil for anonymous
// submitters; the unique (email, title) index turns duplicate claims
// into a conflict without any application-level locking.
func (s *Service) Create(dto CreateDepartmentDTO, ownerAccountID *int64) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	dep := &Department{
		OwnerAccountID: ownerAccountID,
		FullName:       strings.TrimSpace(dto.FullName),
		Email:          strings.ToLower(strings.TrimSpace(dto.Email)),
		Title:          strings.TrimSpace(dto.Title),
		Description:    dto.Description,
		Category:       dto.Category,
		FileURL:        dto.FileURL,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(dep); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create department submission", "error", err)
		return nil, internal.NewInternalError("failed to create submission", err)
	}

	s.logger.Info("department submission created",
		"department_id", dep.ID,
		"category", dep.Category,
		"anonymous", ownerAccountID == nil)
	return dep, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(limit, offset int) ([]*Department, error) {
	deps, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list department submissions", "error", err)
		return nil, internal.NewInternalError("failed to list submissions", err)
	}
	return deps, nil
}

// ListByCategory rejects path segments outside the three-value enum
// before touching the store.
func (s *Service) ListByCategory(category string, limit, offset int) ([]*Department, error) {
	if !IsValidCategory(category) {
		return nil, internal.NewValidationError("unknown department category", internal.ErrCodeInvalidCategory)
	}

	deps, err := s.repo.ListByCategory(category, limit, offset)
	if err != nil {
		s.logger.Error("failed to list department submissions", "error", err, "category", category)
		return nil, internal.NewInternalError("failed to list submissions", err)
	}
	return deps, nil
}

// Update merges supplied fields into the stored record. Owner or admin
// only; anonymous records have no owner and so are admin-only.
func (s *Service) Update(id int64, dto UpdateDepartmentDTO, principal *internal.Principal) (*Department, error) {
	dep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := internal.AuthorizeOwnerOrAdmin(principal, dep.OwnerAccountID); err != nil {
		s.logger.Warn("department update denied",
			"department_id", id,
			"requester_id", principal.AccountID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.FullName != nil {
		dep.FullName = strings.TrimSpace(*dto.FullName)
	}
	if dto.Email != nil {
		dep.Email = strings.ToLower(strings.TrimSpace(*dto.Email))
	}
	if dto.Title != nil {
		dep.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		dep.Description = *dto.Description
	}
	if dto.Category != nil {
		dep.Category = *dto.Category
	}
	if dto.FileURL != nil {
		dep.FileURL = *dto.FileURL
	}
	dep.UpdatedAt = time.Now()

	if err := s.repo.Update(dep); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update department submission", "error", err, "department_id", id)
		return nil, internal.NewInternalError("failed to update submission", err)
	}

	s.logger.Info("department submission updated", "department_id", id, "requester_id", principal.AccountID)
	return dep, nil
}

// SetStatus is the admin review action; the route guard enforces the
// admin role before this is reached.
func (s *Service) SetStatus(id int64, dto UpdateStatusDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	dep.Status = dto.Status
	dep.UpdatedAt = time.Now()

	if err := s.repo.Update(dep); err != nil {
		s.logger.Error("failed to update submission status", "error", err, "department_id", id)
		return nil, internal.NewInternalError("failed to update submission status", err)
	}

	s.logger.Info("department submission reviewed", "department_id", id, "status", dep.Status)
	return dep, nil
}

func (s *Service) Delete(id int64, principal *internal.Principal) error {
	dep, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := internal.AuthorizeOwnerOrAdmin(principal, dep.OwnerAccountID); err != nil {
		s.logger.Warn("department delete denied",
			"department_id", id,
			"requester_id", principal.AccountID)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department submission", "error", err, "department_id", id)
		return internal.NewInternalError("failed to delete submission", err)
	}

	s.logger.Info("department submission deleted", "department_id", id, "requester_id", principal.AccountID)
	return nil
}
