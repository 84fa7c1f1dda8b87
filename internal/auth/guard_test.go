package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/nardosm/ik-registry/internal"
)

type allowAllThrottle struct{}

func (allowAllThrottle) Allow(ctx context.Context, key string) error { return nil }

var _ = ginkgo.Describe("Access Guard", func() {
	var (
		service  *Service
		handler  *Handler
		mockRepo *mockAccountRepository
	)

	const guardSecret = "guard-test-secret-at-least-32-chars"

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAccountRepository()
		issuer := NewJWTTokenIssuer(guardSecret, time.Hour)
		service = NewService(mockRepo, newMockTokenRepository(), issuer, bcrypt.MinCost, slog.Default())
		handler = NewHandler(service, allowAllThrottle{}, false)
	})

	loginToken := func(phone string) string {
		result, err := service.Authenticate(LoginDTO{Phone: phone, Password: "secret123"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return result.Token
	}

	register := func(phone string) {
		_, err := service.Register(RegisterDTO{
			FullName: "Guard Test",
			Phone:    phone,
			Password: "secret123",
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	}

	// echoes the principal the guard attached
	principalProbe := func(captured **internal.Principal) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, ok := internal.PrincipalFromContext(r.Context()); ok {
				*captured = p
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("should reject requests without a token", func() {
			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)

			handler.Authenticate(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(captured).To(gomega.BeNil())
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("MISSING_TOKEN"))
		})

		ginkgo.It("should attach a principal from a bearer token", func() {
			register("+251911234567")
			token := loginToken("+251911234567")

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.Authenticate(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(captured).ToNot(gomega.BeNil())
			gomega.Expect(captured.Role).To(gomega.Equal(internal.RoleUser))
		})

		ginkgo.It("should prefer the cookie over the Authorization header", func() {
			register("+251911234567")
			register("+251922345678")
			cookieToken := loginToken("+251911234567")
			headerToken := loginToken("+251922345678")

			cookieAccountID, _, err := mockRepo.GetCredentialsByPhone("+251911234567")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.AddCookie(&http.Cookie{Name: "token", Value: cookieToken})
			req.Header.Set("Authorization", "Bearer "+headerToken)

			handler.Authenticate(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(captured).ToNot(gomega.BeNil())
			gomega.Expect(captured.AccountID).To(gomega.Equal(cookieAccountID))
		})

		ginkgo.It("should reflect a role change made after the token was minted", func() {
			register("+251911234567")
			token := loginToken("+251911234567")

			mockRepo.accounts["+251911234567"].Role = internal.RoleAdmin

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.Authenticate(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(captured).ToNot(gomega.BeNil())
			gomega.Expect(captured.Role).To(gomega.Equal(internal.RoleAdmin))
		})

		ginkgo.It("should reject a token for a deleted account", func() {
			register("+251911234567")
			token := loginToken("+251911234567")
			delete(mockRepo.accounts, "+251911234567")

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.Authenticate(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(captured).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("AuthenticateOptional", func() {
		ginkgo.It("should let anonymous requests through without a principal", func() {
			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/departments", nil)

			handler.AuthenticateOptional(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(captured).To(gomega.BeNil())
		})

		ginkgo.It("should attach a principal when a valid token is present", func() {
			register("+251911234567")
			token := loginToken("+251911234567")

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/departments", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.AuthenticateOptional(principalProbe(&captured)).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(captured).ToNot(gomega.BeNil())
		})
	})

	ginkgo.Describe("RequireAdmin", func() {
		ginkgo.It("should reject a plain user with 403", func() {
			register("+251911234567")
			token := loginToken("+251911234567")

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.Authenticate(handler.RequireAdmin(principalProbe(&captured))).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(captured).To(gomega.BeNil())
		})

		ginkgo.It("should let an admin through", func() {
			register("+251911234567")
			mockRepo.accounts["+251911234567"].Role = internal.RoleAdmin
			token := loginToken("+251911234567")

			var captured *internal.Principal
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			handler.Authenticate(handler.RequireAdmin(principalProbe(&captured))).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(captured).ToNot(gomega.BeNil())
		})
	})
})
