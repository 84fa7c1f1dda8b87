package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/transport"
)

type denyAllThrottle struct{}

func (denyAllThrottle) Allow(ctx context.Context, key string) error {
	return internal.ErrTooManyAttempts
}

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		service *Service
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		mockRepo := newMockAccountRepository()
		issuer := NewJWTTokenIssuer("handler-test-secret-32-chars-long-xx", time.Hour)
		service = NewService(mockRepo, newMockTokenRepository(), issuer, bcrypt.MinCost, slog.Default())
		handler = NewHandler(service, allowAllThrottle{}, false)

		_, err := service.Register(RegisterDTO{
			FullName: "Abebe Kebede",
			Phone:    "+251911234567",
			Password: "secret123",
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	postJSON := func(path string, body interface{}) (*httptest.ResponseRecorder, *http.Request) {
		payload, err := json.Marshal(body)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return httptest.NewRecorder(), req
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should set an HttpOnly token cookie on success", func() {
			rec, req := postJSON("/api/user/login", LoginDTO{
				Phone:    "+251911234567",
				Password: "secret123",
			})

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).ToNot(gomega.BeEmpty())
			var tokenCookie *http.Cookie
			for _, c := range cookies {
				if c.Name == transport.TokenCookieName {
					tokenCookie = c
				}
			}
			gomega.Expect(tokenCookie).ToNot(gomega.BeNil())
			gomega.Expect(tokenCookie.HttpOnly).To(gomega.BeTrue())
			gomega.Expect(tokenCookie.Value).ToNot(gomega.BeEmpty())

			var body map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body["token"]).ToNot(gomega.BeEmpty())
			account, ok := body["account"].(map[string]interface{})
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(account).ToNot(gomega.HaveKey("password_hash"))
		})

		ginkgo.It("should answer 401 with a generic message on bad credentials", func() {
			rec, req := postJSON("/api/user/login", LoginDTO{
				Phone:    "+251911234567",
				Password: "wrong",
			})

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("invalid phone or password"))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("not found"))
		})

		ginkgo.It("should answer 429 when the throttle rejects the attempt", func() {
			handler.Throttle = denyAllThrottle{}

			rec, req := postJSON("/api/user/login", LoginDTO{
				Phone:    "+251911234567",
				Password: "secret123",
			})

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTooManyRequests))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should clear the cookie and revoke the token", func() {
			result, err := service.Authenticate(LoginDTO{
				Phone:    "+251911234567",
				Password: "secret123",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
			req.AddCookie(&http.Cookie{Name: transport.TokenCookieName, Value: result.Token})

			handler.Logout(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var cleared *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == transport.TokenCookieName {
					cleared = c
				}
			}
			gomega.Expect(cleared).ToNot(gomega.BeNil())
			gomega.Expect(cleared.MaxAge).To(gomega.BeNumerically("<", 0))

			_, err = service.ValidateToken(result.Token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenRevoked))
		})

		ginkgo.It("should answer 401 without a token", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)

			handler.Logout(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should answer 201 and never echo the password hash", func() {
			rec, req := postJSON("/api/users/createUser", RegisterDTO{
				FullName: "Marta Bekele",
				Phone:    "+251922345678",
				Password: "secret123",
			})

			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("password"))
		})

		ginkgo.It("should answer 409 for a duplicate phone", func() {
			rec, req := postJSON("/api/users/createUser", RegisterDTO{
				FullName: "Duplicate",
				Phone:    "+251911234567",
				Password: "secret123",
			})

			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
		})
	})
})
