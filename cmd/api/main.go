// Package main is the entrypoint for the Tasknest API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/cache"
	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/handler"
	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/repository"
	"github.com/tasknest/tasknest/internal/server"
	"github.com/tasknest/tasknest/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if cfg.UsingDevSecret {
		logger.Warn("AUTH_SECRET is not set; using the development signing secret",
			slog.String("env", cfg.AppEnv),
		)
	}

	// Initialize database
	store, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database", slog.String("database_url", redactURL(cfg.DatabaseURL)))

	// Initialize cache (optional)
	var (
		profileCache service.ProfileCache
		cacheHealth  handler.HealthChecker
		cacheClient  *cache.Cache
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			_ = store.Close()
			os.Exit(1)
		}
		profileCache = cacheClient
		cacheHealth = cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set; profile cache disabled")
	}

	// Initialize auth
	tokens, err := auth.NewTokenService(cfg.TokenFormat, cfg.AuthSecret)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewHasher(auth.DefaultParams)

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	accountService := service.NewAccountService(store, hasher, tokens, profileCache, metricsRecorder, logger)
	taskService := service.NewTaskService(store, metricsRecorder)

	// Initialize handlers
	handlers := server.Handlers{
		Root:    handler.New(cfg.ProjectName),
		Health:  handler.NewHealthHandler(cfg.ProjectName, store, cacheHealth),
		Metrics: handler.NewMetricsHandler(metricsRecorder),
		Auth:    handler.NewAuthHandler(accountService, logger),
		Tasks:   handler.NewTaskHandler(taskService, logger),
	}

	// Setup router
	r := server.NewRouter(
		server.RouterConfig{
			AllowedOrigins:     cfg.GetCORSAllowedOrigins(),
			MaxRequestBodySize: cfg.MaxRequestBodySize,
			IsDevelopment:      cfg.IsDevelopment(),
		},
		handlers,
		auth.NewResolver(tokens),
		metricsRecorder,
		logger,
	)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("database", func(context.Context) error {
		return store.Close()
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"project", cfg.ProjectName,
		"env", cfg.AppEnv,
		"token_format", cfg.TokenFormat,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// redactURL drops the password from a connection URL, keeping the username.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	q := parsed.Query()
	if q.Has("password") {
		q.Set("password", "redacted")
		parsed.RawQuery = q.Encode()
	}

	return parsed.String()
}

// sanitizeError replaces any secret appearing in err with its redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
