package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/transport"
	"github.com/nardosm/ik-registry/pkg/logger"
)

// LoginThrottle limits repeated login attempts per key. A nil throttle
// disables limiting.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) error
}

type Handler struct {
	*transport.BaseHandler
	Service       ServiceAPI
	Throttle      LoginThrottle
	SecureCookies bool
}

func NewHandler(svc ServiceAPI, throttle LoginThrottle, secureCookies bool) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:   transport.NewBaseHandler(lg),
		Service:       svc,
		Throttle:      throttle,
		SecureCookies: secureCookies,
	}
}

// Register handles POST /api/users/createUser.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, acc)
}

// Login handles POST /api/user/login. On success the token is delivered
// both as an HTTP-only cookie and in the body, so browser and API
// clients are served by the same route.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.Throttle != nil {
		if err := h.Throttle.Allow(r.Context(), throttleKey(r, dto.Phone)); err != nil {
			h.HandleServiceError(w, err)
			return
		}
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("login failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token, result.ExpiresAt)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   result.Token,
		"account": result.Account,
	})
}

// Logout handles POST /api/user/logout. The token's JTI is denylisted
// server-side and the cookie cleared client-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractToken(r)
	if token == "" {
		h.HandleServiceError(w, internal.ErrMissingToken)
		return
	}

	if err := h.Service.Logout(token); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.clearTokenCookie(w)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     transport.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     transport.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// throttleKey buckets attempts by phone and caller address so one abusive
// client cannot lock out a shared NAT by itself.
func throttleKey(r *http.Request, phone string) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return phone + "@" + host
}
