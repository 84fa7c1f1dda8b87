package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/department"
	departmentPostgres "github.com/nardosm/ik-registry/internal/department/postgres"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

var _ = Describe("Department Repository", func() {
	var (
		db   *gorm.DB
		repo *departmentPostgres.DepartmentRepository
	)

	newSubmission := func(email, title, category string, createdAt time.Time) *department.Department {
		return &department.Department{
			FullName:  "Aster Alemu",
			Email:     email,
			Title:     title,
			Category:  category,
			Status:    department.StatusPending,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
	}

	BeforeEach(func() {
		var err error
		// SQLite in-memory keeps the suite self-contained; the unique
		// index behaves the same as on postgres.
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewDepartmentRepository(db)
	})

	Describe("Create", func() {
		It("should persist a submission", func() {
			dep := newSubmission("a@example.com", "Honey preservation", department.CategoryInnovation, time.Now())

			Expect(repo.Create(dep)).To(Succeed())
			Expect(dep.ID).ToNot(BeZero())
		})

		It("should map a duplicate (email, title) to a conflict", func() {
			now := time.Now()
			Expect(repo.Create(newSubmission("a@example.com", "Honey preservation", department.CategoryInnovation, now))).To(Succeed())

			err := repo.Create(newSubmission("a@example.com", "Honey preservation", department.CategoryResearch, now))
			Expect(err).To(MatchError(internal.ErrDuplicateSubmission))
		})

		It("should allow the same title under a different email", func() {
			now := time.Now()
			Expect(repo.Create(newSubmission("a@example.com", "Honey preservation", department.CategoryInnovation, now))).To(Succeed())
			Expect(repo.Create(newSubmission("b@example.com", "Honey preservation", department.CategoryInnovation, now))).To(Succeed())
		})
	})

	Describe("GetByID", func() {
		It("should return not found for a missing id", func() {
			_, err := repo.GetByID(12345)
			Expect(err).To(MatchError(internal.ErrSubmissionNotFound))
		})

		It("should fetch a stored submission", func() {
			dep := newSubmission("a@example.com", "Honey preservation", department.CategoryInnovation, time.Now())
			Expect(repo.Create(dep)).To(Succeed())

			found, err := repo.GetByID(dep.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(found.Title).To(Equal("Honey preservation"))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			base := time.Now().Add(-time.Hour)
			Expect(repo.Create(newSubmission("a@example.com", "Oldest", department.CategoryInnovation, base))).To(Succeed())
			Expect(repo.Create(newSubmission("b@example.com", "Middle", department.CategoryResearch, base.Add(time.Minute)))).To(Succeed())
			Expect(repo.Create(newSubmission("c@example.com", "Newest", department.CategoryResearch, base.Add(2*time.Minute)))).To(Succeed())
		})

		It("should return submissions most recent first", func() {
			deps, err := repo.List(20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(deps).To(HaveLen(3))
			Expect(deps[0].Title).To(Equal("Newest"))
			Expect(deps[2].Title).To(Equal("Oldest"))
		})

		It("should respect limit and offset", func() {
			deps, err := repo.List(1, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(deps).To(HaveLen(1))
			Expect(deps[0].Title).To(Equal("Middle"))
		})

		It("should filter by category", func() {
			deps, err := repo.ListByCategory(department.CategoryResearch, 20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(deps).To(HaveLen(2))
			Expect(deps[0].Title).To(Equal("Newest"))
		})
	})

	Describe("Update", func() {
		It("should map a duplicate created by the update to a conflict", func() {
			now := time.Now()
			first := newSubmission("a@example.com", "First", department.CategoryInnovation, now)
			second := newSubmission("a@example.com", "Second", department.CategoryInnovation, now)
			Expect(repo.Create(first)).To(Succeed())
			Expect(repo.Create(second)).To(Succeed())

			second.Title = "First"
			Expect(repo.Update(second)).To(MatchError(internal.ErrDuplicateSubmission))
		})
	})

	Describe("Delete", func() {
		It("should remove the submission", func() {
			dep := newSubmission("a@example.com", "Honey preservation", department.CategoryInnovation, time.Now())
			Expect(repo.Create(dep)).To(Succeed())

			Expect(repo.Delete(dep.ID)).To(Succeed())

			_, err := repo.GetByID(dep.ID)
			Expect(err).To(MatchError(internal.ErrSubmissionNotFound))
		})
	})
})
