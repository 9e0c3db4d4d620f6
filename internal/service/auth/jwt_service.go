package auth

import (
	"context"
	"slices"
	"time"
)

// JWTService defines operations for issuing and validating bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for subject carrying
	// the given OAuth2 scopes.
	GenerateToken(ctx context.Context, subject string, scopes []string) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns an error if validation fails (expired, invalid signature, wrong issuer, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of an access token.
type Claims struct {
	// Scopes granted to the token, read from the space-delimited "scope"
	// claim or the "scp" array claim.
	Scopes []string `json:"scopes,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	Audience  []string  `json:"aud,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// HasScope reports whether the token was granted scope.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Scopes, scope)
}
