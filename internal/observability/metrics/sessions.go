package metrics

import (
	"strconv"

	"github.com/bkndhn/bazaar-api/internal/observability/statsd"
)

// SessionMetrics emits counters for session lifecycle events. A nil receiver
// or nil sink drops everything.
type SessionMetrics struct {
	sink statsd.Sink
}

// NewSessionMetrics wraps a sink; sink may be nil.
func NewSessionMetrics(sink statsd.Sink) *SessionMetrics {
	return &SessionMetrics{sink: sink}
}

// PhaseTransition records a session phase change.
func (m *SessionMetrics) PhaseTransition(from, to string) {
	if m == nil || m.sink == nil {
		return
	}
	m.sink.Count("session.transition", 1, map[string]string{"from": from, "to": to})
}

// RoleResolution records a completed role resolution and the number of roles
// it produced.
func (m *SessionMetrics) RoleResolution(roleCount int) {
	if m == nil || m.sink == nil {
		return
	}
	m.sink.Count("session.role_resolution", 1, map[string]string{
		"roles": strconv.Itoa(roleCount),
	})
}

// ForcedSignOut records a server-initiated sign-out (e.g. a paused admin
// account was detected).
func (m *SessionMetrics) ForcedSignOut(reason string) {
	if m == nil || m.sink == nil {
		return
	}
	m.sink.Count("session.forced_sign_out", 1, map[string]string{"reason": reason})
}
