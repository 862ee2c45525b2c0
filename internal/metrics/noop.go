package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) ObserveRequestDuration(duration time.Duration) {}
func (n *NoopRecorder) IncUserSignedUp()                              {}
func (n *NoopRecorder) IncSignIn(status string)                       {}
func (n *NoopRecorder) IncAuthRejected(reason string)                 {}
func (n *NoopRecorder) IncProfileCacheHit()                           {}
func (n *NoopRecorder) IncProfileCacheMiss()                          {}
func (n *NoopRecorder) IncTaskCreated()                               {}
func (n *NoopRecorder) IncTaskUpdated()                               {}
func (n *NoopRecorder) IncTaskToggled()                               {}
func (n *NoopRecorder) IncTaskDeleted()                               {}
