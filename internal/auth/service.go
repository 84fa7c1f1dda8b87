package auth

import (
	"log/slog"
	"strings"

	"github.com/nardosm/ik-registry/internal"
	"github.com/nardosm/ik-registry/internal/account"
)

// Service is the credential service: it registers accounts, verifies
// phone/password pairs and mints/validates session tokens.
type Service struct {
	accounts   AccountRepository
	tokens     TokenRepository
	issuer     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
}

func NewService(accounts AccountRepository, tokens TokenRepository, issuer TokenIssuer, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		accounts:   accounts,
		tokens:     tokens,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account with role "user". A duplicate phone
// surfaces as a conflict from the repository's unique index; there is no
// read-then-write race window here.
func (s *Service) Register(dto RegisterDTO) (*account.Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to process registration", err)
	}

	acc := account.New(strings.TrimSpace(dto.FullName), strings.TrimSpace(dto.Phone), dto.Email, dto.PhotoURL, hash)

	if err := s.accounts.CreateAccount(acc); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create account", "error", err, "phone", acc.Phone)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	s.logger.Info("account registered", "account_id", acc.ID)
	return acc, nil
}

// Authenticate verifies credentials and issues a session token. Unknown
// phone and wrong password intentionally collapse into the same error.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	accountID, storedHash, err := s.accounts.GetCredentialsByPhone(strings.TrimSpace(dto.Phone))
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.GenerateToken(accountID)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err, "account_id", accountID)
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	acc, err := s.accounts.GetAccountByID(accountID)
	if err != nil {
		s.logger.Error("failed to load account after login", "error", err, "account_id", accountID)
		return nil, internal.NewInternalError("failed to load account", err)
	}

	s.logger.Info("login succeeded", "account_id", accountID)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   acc,
	}, nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims, err := s.issuer.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokens.IsRevoked(claims.ID)
	if err != nil {
		s.logger.Error("revocation check failed", "error", err, "jti", claims.ID)
		return nil, internal.NewInternalError("failed to validate token", err)
	}
	if revoked {
		return nil, internal.ErrTokenRevoked
	}

	return claims, nil
}

// Logout denylists the token's JTI until its natural expiry. The cookie
// clearing happens at the transport layer; this makes the token itself
// unusable even if it was copied.
func (s *Service) Logout(tokenString string) error {
	claims, err := s.issuer.ParseToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.tokens.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Error("failed to revoke token", "error", err, "jti", claims.ID)
		return internal.NewInternalError("failed to revoke token", err)
	}

	s.logger.Info("token revoked", "account_id", claims.AccountID)
	return nil
}

func (s *Service) GetAccountByID(accountID int64) (*account.Account, error) {
	return s.accounts.GetAccountByID(accountID)
}

// HashPassword is exposed so the account service can re-hash passwords
// on profile updates with the same cost factor.
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}
