package auth_test

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	storeID := "store-7"
	return &domain.User{
		ID:      "user-1",
		Email:   "manager@techcorp.com",
		Role:    domain.RoleManager,
		StoreID: &storeID,
	}
}

func TestIssueVerify_Roundtrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 7*24*60)

	token, exp, err := tm.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims, verr := tm.Verify(token)
	require.Nil(t, verr)

	identity := claims.Identity()
	assert.Equal(t, "user-1", identity.SubjectID)
	assert.Equal(t, "manager@techcorp.com", identity.Email)
	assert.Equal(t, domain.RoleManager, identity.Role)
	require.NotNil(t, identity.StoreID)
	assert.Equal(t, "store-7", *identity.StoreID)
	assert.Nil(t, identity.CompanyID)
}

func TestVerify_Expired(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	signed := signClaims(t, &auth.Claims{
		Email: "old@techcorp.com",
		Role:  domain.RoleCashier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-2",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})

	claims, verr := tm.Verify(signed)
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeTokenExpired, verr.Code)
	assert.Nil(t, claims)
}

func TestVerify_NotYetActive(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	signed := signClaims(t, &auth.Claims{
		Email: "future@techcorp.com",
		Role:  domain.RoleCashier,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-3",
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		},
	})

	claims, verr := tm.Verify(signed)
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeTokenNotActive, verr.Code)
	assert.Nil(t, claims)
}

func TestVerify_TamperedSignature(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	claims, verr := tm.Verify(tampered)
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeMalformedToken, verr.Code)
	assert.Nil(t, claims)
}

func TestVerify_TamperedClaims(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	token, _, err := tm.Issue(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = "eyJyb2xlIjoic3VwZXJfYWRtaW4ifQ"

	claims, verr := tm.Verify(strings.Join(parts, "."))
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeMalformedToken, verr.Code)
	assert.Nil(t, claims)
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, 60)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &auth.Claims{
		Role: domain.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-4",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, verr := tm.Verify(signed)
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeMalformedToken, verr.Code)
	assert.Nil(t, claims)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", 60)
	verifier := auth.NewTokenManager(testSecret, 60)

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, verr := verifier.Verify(token)
	require.NotNil(t, verr)
	assert.Equal(t, auth.CodeMalformedToken, verr.Code)
}

func signClaims(t *testing.T, claims *auth.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
