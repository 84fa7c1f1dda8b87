package sheet

import (
	"log/slog"
	"time"

	"github.com/nardosm/ik-registry/internal"
)

// Repository is the data access contract shared by both sheet kinds.
type Repository[T Record] interface {
	Create(rec T) error
	GetByID(id int64) (T, error)
	List(limit, offset int) ([]T, error)
	Update(rec T) error
	Delete(id int64) error
}

// Service holds the behavior common to both sheet kinds: ownership
// checks, conflict mapping and timestamp bookkeeping. Type-specific
// validation and field merging stay with the DTOs.
type Service[T Record] struct {
	repo   Repository[T]
	kind   string
	logger *slog.Logger
}

func NewService[T Record](repo Repository[T], kind string, logger *slog.Logger) *Service[T] {
	return &Service[T]{
		repo:   repo,
		kind:   kind,
		logger: logger,
	}
}

// Create stores a new record. The caller has already validated the
// payload and set the owner; the unique (owner, title) index turns a
// repeated filing into a conflict.
func (s *Service[T]) Create(rec T) (T, error) {
	var zero T

	if err := s.repo.Create(rec); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return zero, appErr
		}
		s.logger.Error("failed to create sheet record", "error", err, "kind", s.kind)
		return zero, internal.NewInternalError("failed to create record", err)
	}

	s.logger.Info("sheet record created", "kind", s.kind, "record_id", rec.RecordID(), "owner_id", rec.OwnerID())
	return rec, nil
}

func (s *Service[T]) GetByID(id int64) (T, error) {
	return s.repo.GetByID(id)
}

func (s *Service[T]) List(limit, offset int) ([]T, error) {
	recs, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list sheet records", "error", err, "kind", s.kind)
		return nil, internal.NewInternalError("failed to list records", err)
	}
	return recs, nil
}

// Update fetches the record, enforces owner-or-admin, then lets merge
// validate and apply the partial payload before saving.
func (s *Service[T]) Update(id int64, principal *internal.Principal, merge func(rec T) error) (T, error) {
	var zero T

	rec, err := s.repo.GetByID(id)
	if err != nil {
		return zero, err
	}

	ownerID := rec.OwnerID()
	if err := internal.AuthorizeOwnerOrAdmin(principal, &ownerID); err != nil {
		s.logger.Warn("sheet update denied", "kind", s.kind, "record_id", id, "requester_id", principal.AccountID)
		return zero, err
	}

	if err := merge(rec); err != nil {
		return zero, err
	}
	rec.Touch(time.Now())

	if err := s.repo.Update(rec); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return zero, appErr
		}
		s.logger.Error("failed to update sheet record", "error", err, "kind", s.kind, "record_id", id)
		return zero, internal.NewInternalError("failed to update record", err)
	}

	s.logger.Info("sheet record updated", "kind", s.kind, "record_id", id, "requester_id", principal.AccountID)
	return rec, nil
}

func (s *Service[T]) Delete(id int64, principal *internal.Principal) error {
	rec, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	ownerID := rec.OwnerID()
	if err := internal.AuthorizeOwnerOrAdmin(principal, &ownerID); err != nil {
		s.logger.Warn("sheet delete denied", "kind", s.kind, "record_id", id, "requester_id", principal.AccountID)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete sheet record", "error", err, "kind", s.kind, "record_id", id)
		return internal.NewInternalError("failed to delete record", err)
	}

	s.logger.Info("sheet record deleted", "kind", s.kind, "record_id", id, "requester_id", principal.AccountID)
	return nil
}
