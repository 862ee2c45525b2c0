package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/handler"
	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/middleware"
)

// RouterConfig holds the HTTP-facing settings of the router.
type RouterConfig struct {
	AllowedOrigins     []string
	MaxRequestBodySize int64
	IsDevelopment      bool
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Root    *handler.Handler
	Health  *handler.HealthHandler
	Metrics *handler.MetricsHandler
	Auth    *handler.AuthHandler
	Tasks   *handler.TaskHandler
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(
	cfg RouterConfig,
	h Handlers,
	resolver *auth.Resolver,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *chi.Mux {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Service endpoints (no auth required)
	r.Get("/", h.Root.Info)
	r.Get("/health", h.Health.Health)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Get("/metrics", h.Metrics.Metrics)

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Logger:   logger,
		Resolver: resolver,
		Metrics:  recorder,
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", h.Auth.SignUp)
			r.Post("/sign-in", h.Auth.SignIn)
			r.Post("/logout", h.Auth.Logout)
			r.With(authMiddleware).Get("/me", h.Auth.Me)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/", h.Tasks.List)
			r.Post("/", h.Tasks.Create)
			r.Get("/{id}", h.Tasks.Get)
			r.Put("/{id}", h.Tasks.Update)
			r.Patch("/{id}", h.Tasks.Update)
			r.Delete("/{id}", h.Tasks.Delete)
			r.Patch("/{id}/complete", h.Tasks.ToggleComplete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.Root.NotFound)
	r.MethodNotAllowed(h.Root.MethodNotAllowed)

	return r
}
