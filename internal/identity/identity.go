package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrExpiredToken = errors.New("bearer token has expired")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrParseToken   = errors.New("failed to parse bearer token")
)

// CallerIdentity carries everything the access layer needs to know about
// the current user. It is always passed explicitly into core operations,
// never read from ambient state.
type CallerIdentity struct {
	// BearerToken is forwarded verbatim to the referral service.
	BearerToken    string
	AccountID      string
	OrganisationID string
	Role           string
}

// Claims is the JWT claim set issued by the identity provider in front of
// this service.
type Claims struct {
	OrganisationID string `json:"organisation_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// ParseBearer validates a bearer token and builds the caller identity
// from its claims. The raw token is retained so it can be replayed to the
// referral service.
func ParseBearer(tokenString, secret string) (CallerIdentity, error) {
	if tokenString == "" {
		return CallerIdentity{}, ErrMissingToken
	}

	var claims Claims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// Check the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return CallerIdentity{}, ErrExpiredToken
		}
		return CallerIdentity{}, fmt.Errorf("%w: %v", ErrParseToken, err)
	}
	if !t.Valid {
		return CallerIdentity{}, ErrInvalidToken
	}

	return CallerIdentity{
		BearerToken:    tokenString,
		AccountID:      claims.Subject,
		OrganisationID: claims.OrganisationID,
		Role:           claims.Role,
	}, nil
}

// FromAuthorizationHeader strips the Bearer scheme and parses the token.
func FromAuthorizationHeader(header, secret string) (CallerIdentity, error) {
	const prefix = "Bearer "
	if header == "" {
		return CallerIdentity{}, ErrMissingToken
	}
	if !strings.HasPrefix(header, prefix) {
		return CallerIdentity{}, fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidToken)
	}
	return ParseBearer(strings.TrimPrefix(header, prefix), secret)
}

type contextKey struct{}

// WithIdentity stores the caller identity on the context.
func WithIdentity(ctx context.Context, id CallerIdentity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the caller identity stored by the auth middleware.
func FromContext(ctx context.Context) (CallerIdentity, bool) {
	id, ok := ctx.Value(contextKey{}).(CallerIdentity)
	return id, ok
}
