package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/metrics"
)

// unauthorizedBody is the single response for every authentication failure.
const unauthorizedBody = `{"error":"Invalid or expired token","code":"UNAUTHORIZED"}`

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger   *slog.Logger
	Resolver *auth.Resolver
	Metrics  metrics.Recorder
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header,
// resolves it to a user id, and injects that id into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)

			userID, err := cfg.Resolver.Resolve(token)
			if err != nil {
				reason := rejectionReason(token, err)
				cfg.Metrics.IncAuthRejected(reason)
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("error", err.Error()),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			cfg.Logger.Debug("authentication successful",
				slog.String("user_id", userID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func rejectionReason(token string, err error) string {
	switch {
	case token == "":
		return metrics.ReasonMissing
	case errors.Is(err, auth.ErrExpiredToken):
		return metrics.ReasonExpired
	default:
		return metrics.ReasonInvalid
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
