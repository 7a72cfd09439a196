package monitor

import (
	"sync"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
)

// Holder keeps the latest assembled payload for the display consumers
// (console line, HTTP surface). The display actor publishes into it on
// every refresh tick.
type Holder struct {
	mu  sync.RWMutex
	p   snapshot.Payload
	set bool
}

// NewHolder creates an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set publishes a fresh payload.
func (h *Holder) Set(p snapshot.Payload) {
	h.mu.Lock()
	h.p = p
	h.set = true
	h.mu.Unlock()
}

// Latest returns the most recently published payload. ok is false before
// the first refresh completes.
func (h *Holder) Latest() (p snapshot.Payload, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.p, h.set
}
