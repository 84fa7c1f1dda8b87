package internal

import (
	"context"
	"time"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Roles recognized by the access guard.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated identity attached to a request after the
// access guard has verified the token and re-fetched the account. The role
// always comes from the store, never from token claims.
type Principal struct {
	AccountID int64
	Role      string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Owns reports whether the principal owns a record. Records without an
// owner (anonymous submissions) are owned by nobody.
func (p *Principal) Owns(ownerAccountID *int64) bool {
	if p == nil || ownerAccountID == nil {
		return false
	}
	return p.AccountID == *ownerAccountID
}

// AuthorizeOwnerOrAdmin is the shared ownership policy: a mutation is
// allowed for the record's owner or an admin. Records without an owner
// (anonymous submissions) are mutable by admins only.
func AuthorizeOwnerOrAdmin(principal *Principal, ownerAccountID *int64) error {
	if principal == nil {
		return ErrMissingToken
	}
	if principal.IsAdmin() || principal.Owns(ownerAccountID) {
		return nil
	}
	return ErrNotOwner
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
