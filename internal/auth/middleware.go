package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// ErrMissingToken is returned when the request carries no Authorization header.
	ErrMissingToken = errors.New("token is missing")
	// ErrMalformedHeader is returned when the header is not "Bearer <token>".
	ErrMalformedHeader = errors.New("bearer token not properly formatted")
)

// Rejection reasons reported alongside a 401.
const (
	ReasonMissing         = "missing"
	ReasonMalformedHeader = "malformed_header"
	ReasonExpired         = "expired"
	ReasonInvalid         = "invalid"
)

type contextKey string

// IdentityKey is the context key for the authenticated identity id.
const IdentityKey = contextKey("identityID")

// IdentityHandlerFunc is a handler that runs with an authenticated identity id.
type IdentityHandlerFunc func(identityID string, w http.ResponseWriter, r *http.Request)

// Gate authenticates requests with bearer session tokens. Every request is
// verified independently; nothing is cached.
type Gate struct {
	codec *TokenCodec
}

// NewGate creates a Gate backed by codec.
func NewGate(codec *TokenCodec) *Gate {
	return &Gate{codec: codec}
}

// Authenticate resolves the identity id carried by the request's bearer token.
func (g *Gate) Authenticate(r *http.Request) (string, error) {
	values, ok := r.Header["Authorization"]
	if !ok || len(values) == 0 {
		return "", ErrMissingToken
	}
	// A header that is present but blank is malformed, not missing.
	header := values[0]
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedHeader
	}
	return g.codec.Verify(parts[1])
}

// Middleware creates a middleware for protecting routes. The identity id is
// passed down via the request context.
func (g *Gate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identityID, err := g.Authenticate(r)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
				reject(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, identityID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Protect wraps an identity-aware handler so it only runs for authenticated callers.
func (g *Gate) Protect(h IdentityHandlerFunc) http.HandlerFunc {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityID, _ := IdentityFromContext(r.Context())
		h(identityID, w, r)
	})
	return g.Middleware()(inner).ServeHTTP
}

// IdentityFromContext returns the identity id stored by the gate.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(IdentityKey).(string)
	return id, ok && id != ""
}

// Reason maps a gate error to the reason reported to the client.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return ReasonMissing
	case errors.Is(err, ErrMalformedHeader):
		return ReasonMalformedHeader
	case errors.Is(err, ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonInvalid
	}
}

func reject(w http.ResponseWriter, err error) {
	reason := Reason(err)
	var msg string
	switch reason {
	case ReasonMissing:
		msg = "Token is missing!"
	case ReasonMalformedHeader:
		msg = "Bearer token not properly formatted"
	case ReasonExpired:
		msg = "Token has expired!"
	default:
		msg = "Invalid token!"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": msg, "reason": reason})
}
