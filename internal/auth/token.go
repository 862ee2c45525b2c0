package auth

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 7 * 24 * time.Hour

// DevSecret is the signing secret used when none is configured outside production.
// It is public and must never sign production tokens.
const DevSecret = "dev-secret"

// Token formats accepted by NewTokenService.
const (
	FormatJWT    = "jwt"
	FormatPaseto = "paseto"
)

var (
	// ErrInvalidToken indicates a malformed, tampered or incomplete token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a well-formed token past its expiry.
	ErrExpiredToken = errors.New("token has expired")
	// ErrUnknownFormat indicates an unsupported token format.
	ErrUnknownFormat = errors.New("unknown token format")
)

// TokenService issues and verifies stateless identity tokens.
// Implementations include JWTService (HS256) and PasetoService (v4.local).
type TokenService interface {
	// Issue returns a token asserting subject, valid for TokenTTL.
	Issue(subject string) (string, error)
	// Verify returns the token's subject, or ErrInvalidToken / ErrExpiredToken.
	Verify(token string) (string, error)
}

// Clock returns the current time.
type Clock func() time.Time

// NewTokenService builds the TokenService for the configured format.
func NewTokenService(format, secret string) (TokenService, error) {
	switch format {
	case "", FormatJWT:
		return NewJWTService(secret, nil), nil
	case FormatPaseto:
		return NewPasetoService(secret, nil)
	default:
		return nil, ErrUnknownFormat
	}
}

// issueWindow returns the issued-at and expiry instants for a token minted now.
// Both are whole UTC seconds.
func issueWindow(now Clock) (time.Time, time.Time) {
	iat := now().UTC().Truncate(time.Second)
	return iat, iat.Add(TokenTTL)
}

// newTokenID returns a unique token identifier.
func newTokenID() string {
	return ulid.Make().String()
}
