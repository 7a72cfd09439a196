// Package stops tracks whether the production line is stopped, the active
// stop reason, and the most recently completed stop. Transitions are
// operator-driven only; there are no timeout-based state changes.
package stops

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notifier receives the reason and start time of a new stop. The machine
// invokes it on a detached goroutine and never waits for the outcome.
type Notifier interface {
	Notify(reason string, at time.Time)
}

// State is a consistent view of the machine at one instant. Reason and
// Since are only meaningful when Stopped is true.
type State struct {
	Stopped bool
	Reason  string
	Since   time.Time
}

// LastStop describes the most recently completed stop. The machine keeps
// a single slot, overwritten on every Stopped→Running transition.
type LastStop struct {
	Reason   string
	Duration time.Duration
	Start    time.Time
}

// Machine is the stop/run state machine. The zero state is running.
type Machine struct {
	mu      sync.Mutex
	stopped bool
	reason  string
	since   time.Time
	last    *LastStop

	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a running Machine. notifier may be nil to disable alerts.
func New(notifier Notifier, logger *zap.Logger) *Machine {
	return &Machine{
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Stop transitions Running → Stopped with the given reason and fires the
// notifier asynchronously. An empty reason clears an active stop instead
// (and does nothing when already running). Stopping an already stopped
// machine is a no-op. Returns true if the state changed.
func (m *Machine) Stop(reason string) bool {
	if reason == "" {
		return m.Clear()
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return false
	}
	now := m.now()
	m.stopped = true
	m.reason = reason
	m.since = now
	m.mu.Unlock()

	m.logger.Info("System stopped",
		zap.String("reason", reason),
		zap.String("at", now.Format("15:04:05")))

	if m.notifier != nil {
		// Fire-and-forget: delivery must not block the transition.
		go m.notifier.Notify(reason, now)
	}
	return true
}

// Clear transitions Stopped → Running, recording the completed stop in the
// single LastStop slot. Clearing a running machine is a no-op. Returns true
// if the state changed.
func (m *Machine) Clear() bool {
	m.mu.Lock()
	if !m.stopped {
		m.mu.Unlock()
		return false
	}
	now := m.now()
	last := &LastStop{
		Reason:   m.reason,
		Duration: now.Sub(m.since),
		Start:    m.since,
	}
	m.last = last
	m.stopped = false
	m.reason = ""
	m.since = time.Time{}
	m.mu.Unlock()

	m.logger.Info("System running after stop",
		zap.String("reason", last.Reason),
		zap.Duration("duration", last.Duration))
	return true
}

// State returns a consistent copy of the current stop state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Stopped: m.stopped,
		Reason:  m.reason,
		Since:   m.since,
	}
}

// LastStop returns a copy of the most recently completed stop, or nil if
// no stop has completed since startup.
func (m *Machine) LastStop() *LastStop {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil
	}
	cp := *m.last
	return &cp
}
