// Package supervisor applies concurrency, rate, deadline, and retry policy
// to a stream of external events against a deterministic logical clock,
// invokes the runtime for admitted events, and writes a write-only decision
// log that permits exact replay. Nothing in this package reads wall time:
// the clock advances only from event timestamps.
package supervisor

import (
	"time"

	"github.com/kestrelworks/kestrel/internal/adapter"
)

// Decision is the supervisor's verdict for one event.
type Decision string

const (
	DecisionInvoke Decision = "invoke"
	DecisionSkip   Decision = "skip"
	DecisionDefer  Decision = "defer"
)

// EpisodeID identifies one supervisor decision; allocated from a monotonic
// counter.
type EpisodeID uint64

// Termination classifications that remain eligible for retry. Everything
// else is terminal.
func shouldRetry(t adapter.RunTermination) bool {
	switch t.Kind {
	case adapter.TerminationTimedOut:
		return true
	case adapter.TerminationFailed:
		switch t.Cause {
		case adapter.ErrNetworkTimeout, adapter.ErrAdapterUnavailable, adapter.ErrRuntimeError:
			return true
		}
	}
	return false
}

// Constraints is the policy configuration for one supervisor.
type Constraints struct {
	MaxInFlight  *int           `json:"max_in_flight,omitempty"`
	MaxPerWindow *int           `json:"max_per_window,omitempty"`
	RateWindow   *time.Duration `json:"rate_window,omitempty"`
	Deadline     *time.Duration `json:"deadline,omitempty"`
	MaxRetries   int            `json:"max_retries"`
}

// DecisionLogEntry is one record of the decision log.
type DecisionLogEntry struct {
	GraphID     adapter.GraphID
	EventID     adapter.EventID
	Event       adapter.ExternalEvent
	Decision    Decision
	ScheduleAt  *adapter.EventTime
	EpisodeID   EpisodeID
	Deadline    *time.Duration
	Termination adapter.RunTermination
	RetryCount  int
}

// DecisionLog is write-only from the supervisor's perspective. No read or
// query surface exists inside the core.
type DecisionLog interface {
	Log(entry DecisionLogEntry)
}

// deterministicClock is a monotonically non-decreasing logical clock. It is
// advanced only by event timestamps.
type deterministicClock struct {
	now adapter.EventTime
}

func (c *deterministicClock) advanceTo(at adapter.EventTime) {
	if at > c.now {
		c.now = at
	}
}

// Supervisor owns its clock, rate queue, and episode counter exclusively.
// State is mutated only by OnEvent.
type Supervisor struct {
	graphID     adapter.GraphID
	constraints Constraints
	decisionLog DecisionLog
	runtime     adapter.RuntimeInvoker

	nextEpisodeID     uint64
	inFlight          int
	recentInvocations []adapter.EventTime
	clock             deterministicClock
}

// New builds a supervisor over the given runtime invoker.
func New(graphID adapter.GraphID, constraints Constraints, log DecisionLog, runtime adapter.RuntimeInvoker) *Supervisor {
	return &Supervisor{
		graphID:     graphID,
		constraints: constraints,
		decisionLog: log,
		runtime:     runtime,
	}
}

// OnEvent runs the per-event policy pipeline to completion: advance the
// clock, guard concurrency, guard rate, then invoke with retries and log
// the final decision.
func (s *Supervisor) OnEvent(event adapter.ExternalEvent) {
	s.clock.advanceTo(event.At)
	now := s.clock.now
	episodeID := s.allocateEpisodeID()

	if s.concurrencySaturated() {
		scheduleAt := now
		s.logDecision(event, DecisionDefer, &scheduleAt, episodeID, adapter.Aborted(), 0)
		return
	}

	if delay, limited := s.rateLimitDelay(now); limited {
		scheduleAt := now.Add(delay)
		s.logDecision(event, DecisionDefer, &scheduleAt, episodeID, adapter.Aborted(), 0)
		return
	}

	s.inFlight++
	if s.constraints.MaxPerWindow != nil && s.constraints.RateWindow != nil {
		s.recentInvocations = append(s.recentInvocations, now)
	}

	termination, retries := s.invokeWithRetries(event)

	s.inFlight--
	s.logDecision(event, DecisionInvoke, nil, episodeID, termination, retries)
}

func (s *Supervisor) allocateEpisodeID() EpisodeID {
	id := EpisodeID(s.nextEpisodeID)
	s.nextEpisodeID++
	return id
}

func (s *Supervisor) concurrencySaturated() bool {
	return s.constraints.MaxInFlight != nil && s.inFlight >= *s.constraints.MaxInFlight
}

// rateLimitDelay evicts invocations that have aged out of the window, then
// reports how long the caller must wait when the window is full.
func (s *Supervisor) rateLimitDelay(now adapter.EventTime) (time.Duration, bool) {
	if s.constraints.MaxPerWindow == nil || s.constraints.RateWindow == nil {
		return 0, false
	}
	window := *s.constraints.RateWindow

	for len(s.recentInvocations) > 0 && now.Sub(s.recentInvocations[0]) >= window {
		s.recentInvocations = s.recentInvocations[1:]
	}

	if len(s.recentInvocations) >= *s.constraints.MaxPerWindow {
		elapsed := now.Sub(s.recentInvocations[0])
		delay := window - elapsed
		if delay < 0 {
			delay = 0
		}
		return delay, true
	}

	return 0, false
}

func (s *Supervisor) invokeWithRetries(event adapter.ExternalEvent) (adapter.RunTermination, int) {
	attempts := 0
	termination := s.runtime.Run(s.graphID, event.EventID, event.Context, s.constraints.Deadline)

	for attempts < s.constraints.MaxRetries && shouldRetry(termination) {
		attempts++
		termination = s.runtime.Run(s.graphID, event.EventID, event.Context, s.constraints.Deadline)
	}

	return termination, attempts
}

func (s *Supervisor) logDecision(
	event adapter.ExternalEvent,
	decision Decision,
	scheduleAt *adapter.EventTime,
	episodeID EpisodeID,
	termination adapter.RunTermination,
	retryCount int,
) {
	s.decisionLog.Log(DecisionLogEntry{
		GraphID:     s.graphID,
		EventID:     event.EventID,
		Event:       event,
		Decision:    decision,
		ScheduleAt:  scheduleAt,
		EpisodeID:   episodeID,
		Deadline:    s.constraints.Deadline,
		Termination: termination,
		RetryCount:  retryCount,
	})
}
