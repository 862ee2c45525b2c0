// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
)

// Account errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordRequired   = errors.New("password is required")
)

// ProfileCache stores user profiles keyed by id. Any error is treated as a miss.
type ProfileCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
}

// PasswordHasher hashes and verifies passwords; *auth.Hasher implements it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// AccountService handles sign-up, sign-in and profile lookup.
type AccountService struct {
	store   repository.Store
	hasher  PasswordHasher
	tokens  auth.TokenService
	cache   ProfileCache
	metrics metrics.Recorder
	logger  *slog.Logger

	// dummyDigest is verified against when the email is unknown, so both
	// sign-in failures cost one hash.
	dummyDigest func() string
}

// NewAccountService creates a new AccountService. profileCache may be nil.
func NewAccountService(
	store repository.Store,
	hasher PasswordHasher,
	tokens auth.TokenService,
	profileCache ProfileCache,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		cache:   profileCache,
		metrics: recorder,
		logger:  logger,
		dummyDigest: sync.OnceValue(func() string {
			digest, err := hasher.Hash("tasknest-unknown-account")
			if err != nil {
				logger.Error("failed to compute dummy password digest", "error", err)
			}
			return digest
		}),
	}
}

// SignUpInput defines input for creating an account.
type SignUpInput struct {
	Email    string
	Name     *string
	Password string
}

// AuthResult is a freshly issued token and the user it identifies.
type AuthResult struct {
	Token string
	User  *model.User
}

// SignUp creates an account and issues a token for it.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Early exit; the unique constraint below is authoritative.
	_, err := s.store.GetUserByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             uuid.NewString(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: digest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncUserSignedUp()
	s.logger.Info("user signed up", "user_id", user.ID)

	return &AuthResult{Token: token, User: user}, nil
}

// SignIn verifies credentials and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyDigest())
			s.metrics.IncSignIn(metrics.StatusFailed)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.metrics.IncSignIn(metrics.StatusFailed)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncSignIn(metrics.StatusSuccess)

	return &AuthResult{Token: token, User: user}, nil
}

// Profile returns the user with the given id, consulting the cache first.
func (s *AccountService) Profile(ctx context.Context, userID string) (*model.User, error) {
	if s.cache != nil {
		if user, err := s.cache.GetUser(ctx, userID); err == nil {
			s.metrics.IncProfileCacheHit()
			return user, nil
		}
		s.metrics.IncProfileCacheMiss()
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("failed to cache user profile", "user_id", userID, "error", err)
		}
	}

	return user, nil
}

// validateEmail accepts a bare RFC 5322 address such as "ada@example.com".
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
