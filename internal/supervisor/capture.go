package supervisor

import (
	"sync"
	"time"

	"github.com/kestrelworks/kestrel/internal/adapter"
)

// CaptureVersion tags the bundle format.
const CaptureVersion = "v0"

// EpisodeInvocationRecord is the serializable projection of a decision log
// entry archived in a capture bundle.
type EpisodeInvocationRecord struct {
	EventID     adapter.EventID        `json:"event_id"`
	Decision    Decision               `json:"decision"`
	ScheduleAt  *adapter.EventTime     `json:"schedule_at,omitempty"`
	EpisodeID   EpisodeID              `json:"episode_id"`
	Deadline    *time.Duration         `json:"deadline,omitempty"`
	Termination adapter.RunTermination `json:"termination"`
	RetryCount  int                    `json:"retry_count"`
}

// RecordEntry projects a decision log entry into its archival record.
func RecordEntry(entry DecisionLogEntry) EpisodeInvocationRecord {
	return EpisodeInvocationRecord{
		EventID:     entry.EventID,
		Decision:    entry.Decision,
		ScheduleAt:  entry.ScheduleAt,
		EpisodeID:   entry.EpisodeID,
		Deadline:    entry.Deadline,
		Termination: entry.Termination,
		RetryCount:  entry.RetryCount,
	}
}

// CaptureBundle archives everything needed to replay one supervisor
// session: the constraints, the event trace, and the decisions taken.
type CaptureBundle struct {
	CaptureVersion string                        `json:"capture_version"`
	GraphID        adapter.GraphID               `json:"graph_id"`
	Config         Constraints                   `json:"config"`
	Events         []adapter.ExternalEventRecord `json:"events"`
	Decisions      []EpisodeInvocationRecord     `json:"decisions"`
	AdapterVersion string                        `json:"adapter_version,omitempty"`
}

// CapturingDecisionLog forwards every entry to an inner log and appends its
// archival record to a shared bundle. The mutex guards only the append;
// it is never held across a runtime invocation.
type CapturingDecisionLog struct {
	inner  DecisionLog
	mu     *sync.Mutex
	bundle *CaptureBundle
}

// NewCapturingDecisionLog wraps an inner log around a bundle.
func NewCapturingDecisionLog(inner DecisionLog, mu *sync.Mutex, bundle *CaptureBundle) *CapturingDecisionLog {
	return &CapturingDecisionLog{inner: inner, mu: mu, bundle: bundle}
}

// Log forwards the entry and archives its projection.
func (l *CapturingDecisionLog) Log(entry DecisionLogEntry) {
	l.inner.Log(entry)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.bundle.Decisions = append(l.bundle.Decisions, RecordEntry(entry))
}

// CapturingSession drives a supervisor while archiving every event and
// decision into a bundle.
type CapturingSession struct {
	supervisor *Supervisor
	mu         sync.Mutex
	bundle     *CaptureBundle
}

// NewCapturingSession builds a capturing supervisor session.
func NewCapturingSession(
	graphID adapter.GraphID,
	constraints Constraints,
	innerLog DecisionLog,
	runtime adapter.RuntimeInvoker,
) *CapturingSession {
	session := &CapturingSession{
		bundle: &CaptureBundle{
			CaptureVersion: CaptureVersion,
			GraphID:        graphID,
			Config:         constraints,
		},
	}
	capturing := NewCapturingDecisionLog(innerLog, &session.mu, session.bundle)
	session.supervisor = New(graphID, constraints, capturing, runtime)
	return session
}

// OnEvent archives the event record, then forwards to the supervisor.
func (s *CapturingSession) OnEvent(event adapter.ExternalEvent) {
	s.mu.Lock()
	s.bundle.Events = append(s.bundle.Events, adapter.RecordEvent(event))
	s.mu.Unlock()

	s.supervisor.OnEvent(event)
}

// Bundle returns a copy of the captured bundle.
func (s *CapturingSession) Bundle() CaptureBundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundle := *s.bundle
	bundle.Events = append([]adapter.ExternalEventRecord(nil), s.bundle.Events...)
	bundle.Decisions = append([]EpisodeInvocationRecord(nil), s.bundle.Decisions...)
	return bundle
}

// MemoryDecisionLog accumulates entries in memory. It is the log used by
// replay and by tests; durable sinks are a collaborator concern.
type MemoryDecisionLog struct {
	mu      sync.Mutex
	entries []DecisionLogEntry
}

// NewMemoryDecisionLog returns an empty log.
func NewMemoryDecisionLog() *MemoryDecisionLog {
	return &MemoryDecisionLog{}
}

// Log appends an entry.
func (l *MemoryDecisionLog) Log(entry DecisionLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the accumulated entries.
func (l *MemoryDecisionLog) Entries() []DecisionLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]DecisionLogEntry(nil), l.entries...)
}

// Records returns the archival projection of the accumulated entries.
func (l *MemoryDecisionLog) Records() []EpisodeInvocationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	records := make([]EpisodeInvocationRecord, 0, len(l.entries))
	for _, entry := range l.entries {
		records = append(records, RecordEntry(entry))
	}
	return records
}
