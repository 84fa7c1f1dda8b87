package department

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nardosm/ik-registry/internal"
)

func TestDepartment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Service Suite")
}

// in-memory Repository with the same conflict semantics as the DB index
type memoryRepository struct {
	records map[int64]*Department
	nextID  int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: make(map[int64]*Department), nextID: 1}
}

func (m *memoryRepository) Create(dep *Department) error {
	for _, existing := range m.records {
		if existing.Email == dep.Email && existing.Title == dep.Title {
			return internal.ErrDuplicateSubmission
		}
	}
	dep.ID = m.nextID
	m.nextID++
	stored := *dep
	m.records[dep.ID] = &stored
	return nil
}

func (m *memoryRepository) GetByID(id int64) (*Department, error) {
	dep, exists := m.records[id]
	if !exists {
		return nil, internal.ErrSubmissionNotFound
	}
	found := *dep
	return &found, nil
}

func (m *memoryRepository) List(limit, offset int) ([]*Department, error) {
	var out []*Department
	for _, dep := range m.records {
		found := *dep
		out = append(out, &found)
	}
	return out, nil
}

func (m *memoryRepository) ListByCategory(category string, limit, offset int) ([]*Department, error) {
	var out []*Department
	for _, dep := range m.records {
		if dep.Category == category {
			found := *dep
			out = append(out, &found)
		}
	}
	return out, nil
}

func (m *memoryRepository) Update(dep *Department) error {
	for _, existing := range m.records {
		if existing.ID != dep.ID && existing.Email == dep.Email && existing.Title == dep.Title {
			return internal.ErrDuplicateSubmission
		}
	}
	stored := *dep
	m.records[dep.ID] = &stored
	return nil
}

func (m *memoryRepository) Delete(id int64) error {
	delete(m.records, id)
	return nil
}

func strPtr(s string) *string { return &s }

var _ = Describe("Department Service", func() {
	var (
		repo    *memoryRepository
		service *Service
	)

	ownerID := int64(7)
	owner := &internal.Principal{AccountID: 7, Role: internal.RoleUser}
	stranger := &internal.Principal{AccountID: 8, Role: internal.RoleUser}
	admin := &internal.Principal{AccountID: 9, Role: internal.RoleAdmin}

	validCreate := func() CreateDepartmentDTO {
		return CreateDepartmentDTO{
			FullName:    "Aster Alemu",
			Email:       "aster@example.com",
			Title:       "Traditional honey preservation",
			Description: "Smoke-free storage technique",
			Category:    CategoryInnovation,
		}
	}

	BeforeEach(func() {
		repo = newMemoryRepository()
		service = NewService(repo, slog.Default())
	})

	Describe("Create", func() {
		It("should store a pending submission owned by the caller", func() {
			dep, err := service.Create(validCreate(), &ownerID)

			Expect(err).ToNot(HaveOccurred())
			Expect(dep.ID).ToNot(BeZero())
			Expect(dep.Status).To(Equal(StatusPending))
			Expect(dep.OwnerAccountID).ToNot(BeNil())
			Expect(*dep.OwnerAccountID).To(Equal(ownerID))
		})

		It("should allow anonymous submissions", func() {
			dep, err := service.Create(validCreate(), nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(dep.OwnerAccountID).To(BeNil())
		})

		It("should lowercase the email before storing", func() {
			dto := validCreate()
			dto.Email = "ASTER@Example.COM"

			dep, err := service.Create(dto, nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(dep.Email).To(Equal("aster@example.com"))
		})

		It("should reject a duplicate (email, title) pair with a conflict", func() {
			_, err := service.Create(validCreate(), nil)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(validCreate(), nil)

			Expect(err).To(MatchError(internal.ErrDuplicateSubmission))
			Expect(repo.records).To(HaveLen(1))
		})

		It("should reject an unknown category", func() {
			dto := validCreate()
			dto.Category = "indigenous-magic"

			_, err := service.Create(dto, nil)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("ListByCategory", func() {
		It("should reject a category outside the enum before touching the store", func() {
			_, err := service.ListByCategory("not-a-category", 20, 0)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidCategory))
		})

		It("should return only submissions in the category", func() {
			_, err := service.Create(validCreate(), nil)
			Expect(err).ToNot(HaveOccurred())

			other := validCreate()
			other.Title = "Herbal treatment study"
			other.Category = CategoryResearch
			_, err = service.Create(other, nil)
			Expect(err).ToNot(HaveOccurred())

			deps, err := service.ListByCategory(CategoryResearch, 20, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(deps).To(HaveLen(1))
			Expect(deps[0].Category).To(Equal(CategoryResearch))
		})
	})

	Describe("Update", func() {
		var depID int64

		BeforeEach(func() {
			dep, err := service.Create(validCreate(), &ownerID)
			Expect(err).ToNot(HaveOccurred())
			depID = dep.ID
		})

		It("should merge only the supplied fields", func() {
			updated, err := service.Update(depID, UpdateDepartmentDTO{
				Description: strPtr("Updated description"),
			}, owner)

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Description).To(Equal("Updated description"))
			Expect(updated.Title).To(Equal("Traditional honey preservation"))
			Expect(updated.Category).To(Equal(CategoryInnovation))
		})

		It("should deny a non-owner and leave the record unchanged", func() {
			_, err := service.Update(depID, UpdateDepartmentDTO{
				Title: strPtr("Hijacked"),
			}, stranger)

			Expect(err).To(MatchError(internal.ErrNotOwner))

			stored, err := repo.GetByID(depID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Title).To(Equal("Traditional honey preservation"))
		})

		It("should allow an admin to update any record", func() {
			updated, err := service.Update(depID, UpdateDepartmentDTO{
				Title: strPtr("Reviewed title"),
			}, admin)

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Reviewed title"))
		})

		It("should deny plain users on anonymous records", func() {
			dep, err := service.Create(CreateDepartmentDTO{
				FullName: "Anonymous Person",
				Email:    "anon@example.com",
				Title:    "Unclaimed knowledge",
				Category: CategoryTechnology,
			}, nil)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Update(dep.ID, UpdateDepartmentDTO{
				Title: strPtr("Claimed"),
			}, stranger)
			Expect(err).To(MatchError(internal.ErrNotOwner))

			_, err = service.Update(dep.ID, UpdateDepartmentDTO{
				Title: strPtr("Claimed by admin"),
			}, admin)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return not found for a missing record", func() {
			_, err := service.Update(99999, UpdateDepartmentDTO{}, admin)
			Expect(err).To(MatchError(internal.ErrSubmissionNotFound))
		})
	})

	Describe("SetStatus", func() {
		var depID int64

		BeforeEach(func() {
			dep, err := service.Create(validCreate(), nil)
			Expect(err).ToNot(HaveOccurred())
			depID = dep.ID
		})

		It("should approve a pending submission", func() {
			dep, err := service.SetStatus(depID, UpdateStatusDTO{Status: StatusApproved})

			Expect(err).ToNot(HaveOccurred())
			Expect(dep.Status).To(Equal(StatusApproved))
		})

		It("should reject statuses outside approved/rejected", func() {
			_, err := service.SetStatus(depID, UpdateStatusDTO{Status: "pending"})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})

	Describe("Delete", func() {
		It("should deny a non-owner", func() {
			dep, err := service.Create(validCreate(), &ownerID)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(dep.ID, stranger)).To(MatchError(internal.ErrNotOwner))
			Expect(repo.records).To(HaveLen(1))

			Expect(service.Delete(dep.ID, owner)).To(Succeed())
			Expect(repo.records).To(BeEmpty())
		})
	})
})
