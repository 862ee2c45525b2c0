package auth

import (
	"crypto/sha256"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// PasetoService encrypts and verifies PASETO v4.local tokens.
// The 32-byte symmetric key is derived from the configured secret.
type PasetoService struct {
	key paseto.V4SymmetricKey
	now Clock
}

// NewPasetoService creates a PasetoService. A nil clock defaults to time.Now.
func NewPasetoService(secret string, now Clock) (*PasetoService, error) {
	if now == nil {
		now = time.Now
	}

	sum := sha256.Sum256([]byte(secret))
	key, err := paseto.V4SymmetricKeyFromBytes(sum[:])
	if err != nil {
		return nil, fmt.Errorf("create symmetric key: %w", err)
	}

	return &PasetoService{key: key, now: now}, nil
}

// Issue encrypts a token carrying sub, iat, exp and jti claims.
func (s *PasetoService) Issue(subject string) (string, error) {
	iat, exp := issueWindow(s.now)

	token := paseto.NewToken()
	token.SetSubject(subject)
	token.SetIssuedAt(iat)
	token.SetExpiration(exp)
	token.SetJti(newTokenID())

	return token.V4Encrypt(s.key, nil), nil
}

// Verify decrypts a token and checks its expiry and subject.
// Expiry is checked against the service clock rather than the parser's.
func (s *PasetoService) Verify(tokenStr string) (string, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.key, tokenStr, nil)
	if err != nil {
		return "", ErrInvalidToken
	}

	exp, err := token.GetExpiration()
	if err != nil {
		return "", ErrInvalidToken
	}
	if !s.now().Before(exp) {
		return "", ErrExpiredToken
	}

	subject, err := token.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
