package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/repository"
	"github.com/tasknest/tasknest/internal/service"
)

type output struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Created bool   `json:"created"`
	Token   string `json:"token"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", envOr("DATABASE_URL", "sqlite://todo.db"), "Database URL (postgres:// or sqlite://)")
		secret      = flag.String("secret", envOr("AUTH_SECRET", auth.DevSecret), "Token signing secret")
		tokenFormat = flag.String("token-format", envOr("TOKEN_FORMAT", auth.FormatJWT), "Token format: jwt or paseto")
		email       = flag.String("email", "admin@tasknest.local", "Account email")
		name        = flag.String("name", "", "Display name for a new account")
		password    = flag.String("password", os.Getenv("BOOTSTRAP_PASSWORD"), "Account password (or BOOTSTRAP_PASSWORD)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "a password is required (-password or BOOTSTRAP_PASSWORD)")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer store.Close()

	tokens, err := auth.NewTokenService(*tokenFormat, *secret)
	if err != nil {
		fmt.Fprintln(os.Stderr, "token service:", err)
		os.Exit(1)
	}

	accounts := service.NewAccountService(store, auth.NewHasher(auth.DefaultParams), tokens, nil, nil, nil)

	out, err := ensureUser(ctx, accounts, *email, *name, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

// ensureUser creates the account, or signs in when the email is already registered.
func ensureUser(ctx context.Context, accounts *service.AccountService, email, name, password string) (*output, error) {
	var displayName *string
	if name != "" {
		displayName = &name
	}

	created := true
	res, err := accounts.SignUp(ctx, service.SignUpInput{Email: email, Name: displayName, Password: password})
	if errors.Is(err, service.ErrEmailTaken) {
		created = false
		res, err = accounts.SignIn(ctx, email, password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, fmt.Errorf("email %s is registered with a different password", email)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap user: %w", err)
	}

	return &output{
		UserID:  res.User.ID,
		Email:   res.User.Email,
		Created: created,
		Token:   res.Token,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
