package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token's expiry instant has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed covers bad signatures, undecodable payloads and missing claims.
	ErrTokenMalformed = errors.New("invalid token")
)

// DefaultTokenTTL is the session lifetime used when none is configured.
const DefaultTokenTTL = time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies stateless session tokens. Tokens cannot be
// revoked; rotating the key invalidates every outstanding token.
type TokenCodec struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec creates a codec signing with key. A non-positive ttl uses DefaultTokenTTL.
func NewTokenCodec(key []byte, ttl time.Duration) *TokenCodec {
	return newTokenCodec(key, ttl, time.Now)
}

func newTokenCodec(key []byte, ttl time.Duration, now func() time.Time) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		key: key,
		ttl: ttl,
		now: now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}
}

// TTL returns the lifetime of issued tokens.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue creates a signed token for the identity, expiring after the codec's TTL.
func (c *TokenCodec) Issue(identityID string) (string, error) {
	if identityID == "" {
		return "", fmt.Errorf("cannot issue token: %w", ErrTokenMalformed)
	}
	now := c.now()
	claims := &Claims{
		UserID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Verify parses and validates a token string, returning the embedded identity id.
func (c *TokenCodec) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := c.parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenMalformed
	}
	return claims.UserID, nil
}
