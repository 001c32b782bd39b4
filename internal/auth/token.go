package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/hanzong05/kitapos-middleware/internal/domain"
)

// TokenCode classifies token verification failures with machine-readable
// codes surfaced to clients.
type TokenCode string

const (
	CodeNoToken        TokenCode = "NO_TOKEN"
	CodeTokenExpired   TokenCode = "TOKEN_EXPIRED"
	CodeTokenNotActive TokenCode = "TOKEN_NOT_ACTIVE"
	CodeMalformedToken TokenCode = "MALFORMED_TOKEN"
)

// TokenError carries the classification alongside the underlying parse error.
type TokenError struct {
	Code TokenCode
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 7 * 24 * 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// TTL returns the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the JWT payload. Scoping fields are present only when the
// account carries the affiliation.
type Claims struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CompanyID *string     `json:"company_id,omitempty"`
	StoreID   *string     `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into a request identity.
func (c *Claims) Identity() *Identity {
	return &Identity{
		SubjectID: c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		CompanyID: c.CompanyID,
		StoreID:   c.StoreID,
	}
}

// Issue builds and signs a JWT for the user. The signature covers every
// claim, so tokens cannot be edited to gain access the account did not have
// at issuance.
func (tm *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		StoreID:   user.StoreID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates a token and returns its claims. Failures are classified:
// expired, not yet active (clock skew), or malformed (bad signature or
// structure). Verification is stateless; no revocation list is consulted.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, *TokenError) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &TokenError{Code: CodeTokenExpired, Err: err}
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return nil, &TokenError{Code: CodeTokenNotActive, Err: err}
		default:
			return nil, &TokenError{Code: CodeMalformedToken, Err: err}
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, &TokenError{Code: CodeMalformedToken, Err: errors.New("invalid token claims")}
	}
	return claims, nil
}
