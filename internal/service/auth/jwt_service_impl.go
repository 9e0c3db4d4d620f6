package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	issuer        string
	audience      string
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

// scopeList decodes a claim that is either a JSON array of strings or a
// single space-delimited string.
type scopeList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *scopeList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("scope claim must be a string or an array of strings: %w", err)
	}
	*s = strings.Fields(single)
	return nil
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	Scope string    `json:"scope,omitempty"`
	Scp   scopeList `json:"scp,omitempty"`
	jwt.RegisteredClaims
}

// scopes merges both scope claims, dropping duplicates.
func (c *jwtCustomClaims) scopes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range append(strings.Fields(c.Scope), c.Scp...) {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	lifetime := time.Duration(cfg.TokenLifetimeMinutes) * time.Minute
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	return &hmacJWTService{
		signingKey:    []byte(cfg.JWTSecret),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		tokenLifetime: lifetime,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute, // Allow 2 minutes of clock skew to handle minor time drifts
	}, nil
}

// GenerateToken creates a signed JWT access token. Scopes are written to the
// space-delimited "scope" claim.
func (s *hmacJWTService) GenerateToken(ctx context.Context, subject string, scopes []string) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT access token",
			"error", err,
			"subject", subject,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT access token and returns the claims if valid.
// Issuer and audience are checked only when configured.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("access token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("access token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("access token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("access token validation failed: invalid signature", "error", err)
		default:
			log.Debug("access token validation failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	result := &Claims{
		Scopes:   claims.scopes(),
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
		ID:       claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug("access token validated successfully",
		"subject", claims.Subject,
		"token_id", claims.ID,
		"scopes", result.Scopes)

	return result, nil
}
