package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		OrganisationID: "456",
		Role:           "VcsProfessional",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseBearer(t *testing.T) {
	tokenString := signToken(t, validClaims(), testSecret)

	caller, err := ParseBearer(tokenString, testSecret)
	require.NoError(t, err)

	assert.Equal(t, tokenString, caller.BearerToken)
	assert.Equal(t, "123", caller.AccountID)
	assert.Equal(t, "456", caller.OrganisationID)
	assert.Equal(t, "VcsProfessional", caller.Role)
}

func TestParseBearerEmptyToken(t *testing.T) {
	_, err := ParseBearer("", testSecret)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestParseBearerExpiredToken(t *testing.T) {
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	tokenString := signToken(t, claims, testSecret)

	_, err := ParseBearer(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseBearerWrongSecret(t *testing.T) {
	tokenString := signToken(t, validClaims(), "some-other-secret")

	_, err := ParseBearer(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrParseToken)
}

func TestParseBearerGarbage(t *testing.T) {
	_, err := ParseBearer("not.a.jwt", testSecret)
	assert.ErrorIs(t, err, ErrParseToken)
}

func TestFromAuthorizationHeader(t *testing.T) {
	tokenString := signToken(t, validClaims(), testSecret)

	caller, err := FromAuthorizationHeader("Bearer "+tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "123", caller.AccountID)
}

func TestFromAuthorizationHeaderWrongScheme(t *testing.T) {
	_, err := FromAuthorizationHeader("Basic dXNlcjpwYXNz", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromAuthorizationHeaderEmpty(t *testing.T) {
	_, err := FromAuthorizationHeader("", testSecret)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	caller := CallerIdentity{BearerToken: "token", AccountID: "123"}

	ctx := WithIdentity(context.Background(), caller)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, caller, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
