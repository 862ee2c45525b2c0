package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RequestDurationCount   uint64
	RequestDurationTotalNs int64

	UsersSignedUp     uint64
	SignInsSucceeded  uint64
	SignInsFailed     uint64
	AuthRejectMissing uint64
	AuthRejectInvalid uint64
	AuthRejectExpired uint64
	ProfileCacheHits  uint64
	ProfileCacheMiss  uint64

	TasksCreated uint64
	TasksUpdated uint64
	TasksToggled uint64
	TasksDeleted uint64
}

// InMemoryRecorder stores metrics in memory.
// It backs the /metrics endpoint and is safe for concurrent use.
type InMemoryRecorder struct {
	requestDurationCount   atomic.Uint64
	requestDurationTotalNs atomic.Int64

	usersSignedUp     atomic.Uint64
	signInsSucceeded  atomic.Uint64
	signInsFailed     atomic.Uint64
	authRejectMissing atomic.Uint64
	authRejectInvalid atomic.Uint64
	authRejectExpired atomic.Uint64
	profileCacheHits  atomic.Uint64
	profileCacheMiss  atomic.Uint64

	tasksCreated atomic.Uint64
	tasksUpdated atomic.Uint64
	tasksToggled atomic.Uint64
	tasksDeleted atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RequestDurationCount:   m.requestDurationCount.Load(),
		RequestDurationTotalNs: m.requestDurationTotalNs.Load(),
		UsersSignedUp:          m.usersSignedUp.Load(),
		SignInsSucceeded:       m.signInsSucceeded.Load(),
		SignInsFailed:          m.signInsFailed.Load(),
		AuthRejectMissing:      m.authRejectMissing.Load(),
		AuthRejectInvalid:      m.authRejectInvalid.Load(),
		AuthRejectExpired:      m.authRejectExpired.Load(),
		ProfileCacheHits:       m.profileCacheHits.Load(),
		ProfileCacheMiss:       m.profileCacheMiss.Load(),
		TasksCreated:           m.tasksCreated.Load(),
		TasksUpdated:           m.tasksUpdated.Load(),
		TasksToggled:           m.tasksToggled.Load(),
		TasksDeleted:           m.tasksDeleted.Load(),
	}
}

// ObserveRequestDuration records the duration of one HTTP request.
func (m *InMemoryRecorder) ObserveRequestDuration(duration time.Duration) {
	m.requestDurationCount.Add(1)
	m.requestDurationTotalNs.Add(duration.Nanoseconds())
}

// IncUserSignedUp increments the sign-up counter.
func (m *InMemoryRecorder) IncUserSignedUp() {
	m.usersSignedUp.Add(1)
}

// IncSignIn increments the sign-in counter for the given status.
func (m *InMemoryRecorder) IncSignIn(status string) {
	if status == StatusSuccess {
		m.signInsSucceeded.Add(1)
		return
	}
	m.signInsFailed.Add(1)
}

// IncAuthRejected increments the rejected-credential counter for the given reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	switch reason {
	case ReasonMissing:
		m.authRejectMissing.Add(1)
	case ReasonExpired:
		m.authRejectExpired.Add(1)
	default:
		m.authRejectInvalid.Add(1)
	}
}

func (m *InMemoryRecorder) IncProfileCacheHit()  { m.profileCacheHits.Add(1) }
func (m *InMemoryRecorder) IncProfileCacheMiss() { m.profileCacheMiss.Add(1) }

func (m *InMemoryRecorder) IncTaskCreated() { m.tasksCreated.Add(1) }
func (m *InMemoryRecorder) IncTaskUpdated() { m.tasksUpdated.Add(1) }
func (m *InMemoryRecorder) IncTaskToggled() { m.tasksToggled.Add(1) }
func (m *InMemoryRecorder) IncTaskDeleted() { m.tasksDeleted.Add(1) }
