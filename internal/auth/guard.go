package auth

import (
	"net/http"

	"github.com/nardosm/ik-registry/internal"
)

// Authenticate gates protected routes. It extracts the token (cookie
// first, then Authorization header), validates it and re-fetches the
// account so the principal's role reflects the store, not a stale claim.
// The request only proceeds once a Principal is attached to the context.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractToken(r)
		if token == "" {
			h.HandleServiceError(w, internal.ErrMissingToken)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		acc, err := h.Service.GetAccountByID(claims.AccountID)
		if err != nil {
			if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode == http.StatusNotFound {
				// account deleted since the token was minted
				h.HandleServiceError(w, internal.ErrInvalidToken)
				return
			}
			h.Logger.Error("guard: account lookup failed", "error", err, "account_id", claims.AccountID)
			h.HandleServiceError(w, internal.NewInternalError("failed to authenticate request", err))
			return
		}

		principal := &internal.Principal{AccountID: acc.ID, Role: acc.Role}
		ctx := internal.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional attaches a Principal when a valid token is
// supplied but lets anonymous requests through untouched. Used on
// public submission routes so logged-in submitters become owners of
// what they create.
func (h *Handler) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		acc, err := h.Service.GetAccountByID(claims.AccountID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal := &internal.Principal{AccountID: acc.ID, Role: acc.Role}
		ctx := internal.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated principals whose store-backed role
// does not match. Runs after Authenticate.
func (h *Handler) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				h.HandleServiceError(w, internal.ErrMissingToken)
				return
			}

			if principal.Role != role {
				h.Logger.Warn("access denied: role mismatch",
					"account_id", principal.AccountID,
					"required_role", role,
					"role", principal.Role)
				h.HandleServiceError(w, internal.ErrRoleRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for the only elevated role this service has.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return h.RequireRole(internal.RoleAdmin)(next)
}
