package handler

import (
	"fmt"
	"net/http"

	"github.com/tasknest/tasknest/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "tasknest_http_request_duration_seconds_count %d\n", snap.RequestDurationCount)
	writeMetric(w, "tasknest_http_request_duration_seconds_sum %.6f\n", float64(snap.RequestDurationTotalNs)/1e9)

	writeMetric(w, "tasknest_users_signed_up_total %d\n", snap.UsersSignedUp)
	writeMetric(w, "tasknest_sign_ins_total{status=\"success\"} %d\n", snap.SignInsSucceeded)
	writeMetric(w, "tasknest_sign_ins_total{status=\"failed\"} %d\n", snap.SignInsFailed)

	writeMetric(w, "tasknest_auth_rejected_total{reason=\"missing\"} %d\n", snap.AuthRejectMissing)
	writeMetric(w, "tasknest_auth_rejected_total{reason=\"invalid\"} %d\n", snap.AuthRejectInvalid)
	writeMetric(w, "tasknest_auth_rejected_total{reason=\"expired\"} %d\n", snap.AuthRejectExpired)

	writeMetric(w, "tasknest_profile_cache_hits_total %d\n", snap.ProfileCacheHits)
	writeMetric(w, "tasknest_profile_cache_misses_total %d\n", snap.ProfileCacheMiss)

	writeMetric(w, "tasknest_tasks_created_total %d\n", snap.TasksCreated)
	writeMetric(w, "tasknest_tasks_updated_total %d\n", snap.TasksUpdated)
	writeMetric(w, "tasknest_tasks_toggled_total %d\n", snap.TasksToggled)
	writeMetric(w, "tasknest_tasks_deleted_total %d\n", snap.TasksDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
