package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nardosm/ik-registry/internal/account"
)

// ServiceAPI is what the HTTP layer sees of the credential service.
type ServiceAPI interface {
	Register(dto RegisterDTO) (*account.Account, error)
	Authenticate(dto LoginDTO) (*LoginResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	Logout(tokenString string) error
	GetAccountByID(accountID int64) (*account.Account, error)
	HashPassword(password string) (string, error)
}

// AccountRepository is the slice of account storage the credential
// service needs. Credential lookup returns only what password
// verification requires.
type AccountRepository interface {
	CreateAccount(acc *account.Account) error
	GetCredentialsByPhone(phone string) (accountID int64, passwordHash string, err error)
	GetAccountByID(accountID int64) (*account.Account, error)
}

// TokenRepository is the server-side revocation list. Logout records the
// token's JTI here; validation consults it so a stolen token dies with
// the session instead of living out its natural expiry.
type TokenRepository interface {
	Revoke(jti string, expiresAt time.Time) error
	IsRevoked(jti string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(accountID int64) (token string, expiresAt time.Time, err error)
	ParseToken(tokenString string) (*Claims, error)
}

// Claims carries only the subject and registered claims. The account's
// role is deliberately absent: tokens are long-lived and roles can
// change, so the guard re-fetches the account instead of trusting a
// role claim.
type Claims struct {
	AccountID int64 `json:"account_id"`
	jwt.RegisteredClaims
}

// LoginResult is what a successful authentication hands back to the
// transport layer.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Account   *account.Account `json:"account"`
}

// RevokedToken is a denylisted JTI. Rows past ExpiresAt are garbage;
// the seeding of new rows prunes them opportunistically.
type RevokedToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"column:jti;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	RevokedAt time.Time `json:"revoked_at" gorm:"column:revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

// VerifyPassword compares a bcrypt hash against a plaintext candidate.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
