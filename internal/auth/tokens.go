// Package auth issues and verifies bearer tokens for the JSON API.
// Tokens are HS256-signed JWTs carrying the user ID as subject.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	// DefaultTokenTTL is how long issued tokens stay valid
	DefaultTokenTTL = 24 * time.Hour

	issuer        = "quill"
	usernameClaim = "username"
)

// Claims is the verified identity carried by a bearer token
type Claims struct {
	Username string
	UserID   int64
}

// TokenIssuer signs and verifies API bearer tokens with a shared secret
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer.
// ttl values of zero or less fall back to DefaultTokenTTL.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret too short: need at least 32 bytes, got %d", len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

// Issue creates a signed token for the given user
func (i *TokenIssuer) Issue(userID int64, username string) (string, error) {
	now := time.Now().UTC()

	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(strconv.FormatInt(userID, 10)).
		Claim(usernameClaim, username).
		IssuedAt(now).
		Expiration(now.Add(i.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, i.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify parses a token and returns its claims.
// Rejects bad signatures, wrong issuers, and expired tokens.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(jwa.HS256, i.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := strconv.ParseInt(parsed.Subject(), 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("invalid token subject %q", parsed.Subject())
	}

	claims := &Claims{UserID: userID}
	if v, ok := parsed.Get(usernameClaim); ok {
		if username, ok := v.(string); ok {
			claims.Username = username
		}
	}

	return claims, nil
}
