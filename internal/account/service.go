package account

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nardosm/ik-registry/internal"
)

// Repository defines the data access methods for accounts.
type Repository interface {
	GetByID(id int64) (*Account, error)
	List(limit, offset int) ([]*Account, error)
	Update(acc *Account) error
	Delete(id int64) error
}

// PasswordHasher re-hashes passwords on profile updates. Implemented by
// the credential service so the cost factor stays in one place.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) GetByID(id int64) (*Account, error) {
	return s.repo.GetByID(id)
}

// List returns accounts most recent first. Admin-only; the route guard
// enforces that before the service is reached.
func (s *Service) List(limit, offset int) ([]*Account, error) {
	accounts, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err)
		return nil, internal.NewInternalError("failed to list accounts", err)
	}
	return accounts, nil
}

// Update merges the supplied fields into the stored account. Only the
// owner or an admin may mutate, and only an admin may change roles.
func (s *Service) Update(id int64, dto UpdateAccountDTO, principal *internal.Principal) (*Account, error) {
	acc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := internal.AuthorizeOwnerOrAdmin(principal, &acc.ID); err != nil {
		s.logger.Warn("account update denied",
			"account_id", id,
			"requester_id", principal.AccountID)
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Role != nil && !principal.IsAdmin() {
		s.logger.Warn("role change denied", "account_id", id, "requester_id", principal.AccountID)
		return nil, internal.ErrRoleRequired
	}

	if dto.FullName != nil {
		acc.FullName = strings.TrimSpace(*dto.FullName)
	}
	if dto.Email != nil {
		acc.Email = *dto.Email
	}
	if dto.PhotoURL != nil {
		acc.PhotoURL = *dto.PhotoURL
	}
	if dto.Role != nil {
		acc.Role = *dto.Role
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			s.logger.Error("failed to hash password on update", "error", err, "account_id", id)
			return nil, internal.NewInternalError("failed to update account", err)
		}
		acc.PasswordHash = hash
	}
	acc.UpdatedAt = time.Now()

	if err := s.repo.Update(acc); err != nil {
		s.logger.Error("failed to update account", "error", err, "account_id", id)
		return nil, internal.NewInternalError("failed to update account", err)
	}

	s.logger.Info("account updated", "account_id", id, "requester_id", principal.AccountID)
	return acc, nil
}

// Delete removes an account. Owner or admin only.
func (s *Service) Delete(id int64, principal *internal.Principal) error {
	acc, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := internal.AuthorizeOwnerOrAdmin(principal, &acc.ID); err != nil {
		s.logger.Warn("account delete denied",
			"account_id", id,
			"requester_id", principal.AccountID)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete account", "error", err, "account_id", id)
		return internal.NewInternalError("failed to delete account", err)
	}

	s.logger.Info("account deleted", "account_id", id, "requester_id", principal.AccountID)
	return nil
}
