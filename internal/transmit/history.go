// Package transmit delivers assembled snapshots to the remote server over
// a line-based TCP exchange, or through a probabilistic simulator, while
// tracking the shared success/failure history.
package transmit

import (
	"sync"
	"time"
)

// Tracker records the transmission history shared by the live and simulated
// senders: the timestamp of the last successful send and a monotonic count
// of failed attempts.
type Tracker struct {
	mu          sync.Mutex
	lastSuccess *time.Time
	errorCount  uint64
}

// NewTracker creates an empty history tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Success records a successful transmission at the given time.
func (t *Tracker) Success(at time.Time) {
	t.mu.Lock()
	t.lastSuccess = &at
	t.mu.Unlock()
}

// Failure increments the error count. The last-success timestamp is untouched.
func (t *Tracker) Failure() {
	t.mu.Lock()
	t.errorCount++
	t.mu.Unlock()
}

// Stats returns a consistent copy of the history.
func (t *Tracker) Stats() (lastSuccess *time.Time, errorCount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastSuccess != nil {
		at := *t.lastSuccess
		lastSuccess = &at
	}
	return lastSuccess, t.errorCount
}
