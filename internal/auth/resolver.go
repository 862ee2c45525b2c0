package auth

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any credential that does not resolve to an identity.
var ErrUnauthorized = errors.New("unauthorized")

// Resolver turns a bearer credential into the authenticated user id.
type Resolver struct {
	tokens TokenService
}

// NewResolver creates a Resolver backed by the given token service.
func NewResolver(tokens TokenService) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve returns the subject of credential. Every failure wraps ErrUnauthorized;
// the underlying cause is kept for logging only.
func (r *Resolver) Resolve(credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%w: missing credential", ErrUnauthorized)
	}

	subject, err := r.tokens.Verify(credential)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return subject, nil
}
