package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService signs and verifies HS256 JSON Web Tokens.
type JWTService struct {
	secret []byte
	now    Clock
}

// NewJWTService creates a JWTService. A nil clock defaults to time.Now.
func NewJWTService(secret string, now Clock) *JWTService {
	if now == nil {
		now = time.Now
	}
	return &JWTService{
		secret: []byte(secret),
		now:    now,
	}
}

// Issue signs a token carrying sub, iat, exp and jti claims.
func (s *JWTService) Issue(subject string) (string, error) {
	iat, exp := issueWindow(s.now)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        newTokenID(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, expiry and subject of a token.
func (s *JWTService) Verify(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
