package sheet

import (
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nardosm/ik-registry/internal"
)

func TestSheet(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sheet Service Suite")
}

// in-memory repository for SheetOne with the DB index's semantics
type memorySheetOneRepository struct {
	records map[int64]*SheetOne
	nextID  int64
}

func newMemorySheetOneRepository() *memorySheetOneRepository {
	return &memorySheetOneRepository{records: make(map[int64]*SheetOne), nextID: 1}
}

func (m *memorySheetOneRepository) Create(rec *SheetOne) error {
	for _, existing := range m.records {
		if existing.OwnerAccountID == rec.OwnerAccountID && existing.KnowledgeTitle == rec.KnowledgeTitle {
			return internal.ErrDuplicateSubmission
		}
	}
	rec.ID = m.nextID
	m.nextID++
	stored := *rec
	m.records[rec.ID] = &stored
	return nil
}

func (m *memorySheetOneRepository) GetByID(id int64) (*SheetOne, error) {
	rec, exists := m.records[id]
	if !exists {
		return nil, internal.ErrSubmissionNotFound
	}
	found := *rec
	return &found, nil
}

func (m *memorySheetOneRepository) List(limit, offset int) ([]*SheetOne, error) {
	var out []*SheetOne
	for _, rec := range m.records {
		found := *rec
		out = append(out, &found)
	}
	return out, nil
}

func (m *memorySheetOneRepository) Update(rec *SheetOne) error {
	for _, existing := range m.records {
		if existing.ID != rec.ID && existing.OwnerAccountID == rec.OwnerAccountID && existing.KnowledgeTitle == rec.KnowledgeTitle {
			return internal.ErrDuplicateSubmission
		}
	}
	stored := *rec
	m.records[rec.ID] = &stored
	return nil
}

func (m *memorySheetOneRepository) Delete(id int64) error {
	delete(m.records, id)
	return nil
}

func strPtr(s string) *string { return &s }

var _ = Describe("Sheet Service", func() {
	var (
		repo    *memorySheetOneRepository
		service *Service[*SheetOne]
	)

	owner := &internal.Principal{AccountID: 1, Role: internal.RoleUser}
	stranger := &internal.Principal{AccountID: 2, Role: internal.RoleUser}
	admin := &internal.Principal{AccountID: 3, Role: internal.RoleAdmin}

	newRecord := func(ownerID int64, title string) *SheetOne {
		now := time.Now()
		return &SheetOne{
			OwnerAccountID: ownerID,
			FullName:       "Aster Alemu",
			Sex:            SexFemale,
			KnowledgeTitle: title,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	BeforeEach(func() {
		repo = newMemorySheetOneRepository()
		service = NewService[*SheetOne](repo, "sheet-one", slog.Default())
	})

	Describe("Create", func() {
		It("should store the record", func() {
			rec, err := service.Create(newRecord(1, "Honey preservation"))

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).ToNot(BeZero())
		})

		It("should conflict when the same owner files the same title twice", func() {
			_, err := service.Create(newRecord(1, "Honey preservation"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(newRecord(1, "Honey preservation"))
			Expect(err).To(MatchError(internal.ErrDuplicateSubmission))
			Expect(repo.records).To(HaveLen(1))
		})

		It("should allow the same title from a different owner", func() {
			_, err := service.Create(newRecord(1, "Honey preservation"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(newRecord(2, "Honey preservation"))
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var recID int64

		applyDTO := func(dto UpdateSheetOneDTO) func(*SheetOne) error {
			return func(rec *SheetOne) error {
				if err := dto.Validate(); err != nil {
					return err
				}
				dto.Apply(rec)
				return nil
			}
		}

		BeforeEach(func() {
			rec, err := service.Create(newRecord(1, "Honey preservation"))
			Expect(err).ToNot(HaveOccurred())
			recID = rec.ID
		})

		It("should merge only the supplied fields", func() {
			updated, err := service.Update(recID, owner, applyDTO(UpdateSheetOneDTO{
				Region: strPtr("Amhara"),
			}))

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Region).To(Equal("Amhara"))
			Expect(updated.KnowledgeTitle).To(Equal("Honey preservation"))
			Expect(updated.Sex).To(Equal(SexFemale))
		})

		It("should deny a non-owner and leave the record unchanged", func() {
			_, err := service.Update(recID, stranger, applyDTO(UpdateSheetOneDTO{
				KnowledgeTitle: strPtr("Hijacked"),
			}))

			Expect(err).To(MatchError(internal.ErrNotOwner))

			stored, err := repo.GetByID(recID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.KnowledgeTitle).To(Equal("Honey preservation"))
		})

		It("should allow an admin", func() {
			updated, err := service.Update(recID, admin, applyDTO(UpdateSheetOneDTO{
				KnowledgeTitle: strPtr("Reviewed title"),
			}))

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.KnowledgeTitle).To(Equal("Reviewed title"))
		})

		It("should reject an invalid partial payload before saving", func() {
			_, err := service.Update(recID, owner, applyDTO(UpdateSheetOneDTO{
				Sex: strPtr("unknown"),
			}))

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))

			stored, err := repo.GetByID(recID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Sex).To(Equal(SexFemale))
		})

		It("should return not found for a missing record", func() {
			_, err := service.Update(9999, admin, applyDTO(UpdateSheetOneDTO{}))
			Expect(err).To(MatchError(internal.ErrSubmissionNotFound))
		})
	})

	Describe("Delete", func() {
		It("should enforce owner-or-admin", func() {
			rec, err := service.Create(newRecord(1, "Honey preservation"))
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(rec.ID, stranger)).To(MatchError(internal.ErrNotOwner))
			Expect(repo.records).To(HaveLen(1))

			Expect(service.Delete(rec.ID, admin)).To(Succeed())
			Expect(repo.records).To(BeEmpty())
		})
	})
})

var _ = Describe("Sheet DTO validation", func() {
	It("should require title and sector on the assessment sheet", func() {
		dto := CreateSheetTwoDTO{}

		err := dto.Validate()
		Expect(err).To(HaveOccurred())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(400))
	})

	It("should reject a negative duration", func() {
		dto := CreateSheetTwoDTO{Title: "Weaving", Sector: "textile", DurationYears: -1}

		Expect(dto.Validate()).To(HaveOccurred())
	})

	It("should accept a complete assessment payload", func() {
		dto := CreateSheetTwoDTO{
			Title:          "Weaving",
			Sector:         "textile",
			DurationYears:  12,
			TransferMethod: "apprenticeship",
			UsageStatus:    "in use",
		}

		Expect(dto.Validate()).To(Succeed())
	})
})
