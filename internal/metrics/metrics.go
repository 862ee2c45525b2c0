// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Sign-in outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Auth rejection reasons.
const (
	ReasonMissing = "missing"
	ReasonInvalid = "invalid"
	ReasonExpired = "expired"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// HTTP metrics
	ObserveRequestDuration(duration time.Duration)

	// Account metrics
	IncUserSignedUp()
	IncSignIn(status string)       // status: "success" or "failed"
	IncAuthRejected(reason string) // reason: "missing", "invalid", "expired"
	IncProfileCacheHit()
	IncProfileCacheMiss()

	// Task metrics
	IncTaskCreated()
	IncTaskUpdated()
	IncTaskToggled()
	IncTaskDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
