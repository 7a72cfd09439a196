package transmit

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
)

// Sender delivers one assembled snapshot per call. Implementations must
// update the shared history on every attempt: last-success timestamp on
// success, error count on failure.
type Sender interface {
	Send(p snapshot.Payload) bool
}

// switcher picks the live or simulated path from the active configuration
// on every send, so a settings change takes effect on the next cycle.
type switcher struct {
	cfg  *config.Store
	live *Client
	sim  *Simulated
}

// New creates a Sender that follows the configured simulation flag.
func New(cfg *config.Store, history *Tracker, rng *rand.Rand, logger *zap.Logger) Sender {
	return &switcher{
		cfg:  cfg,
		live: NewClient(cfg, history, logger),
		sim:  NewSimulated(history, rng, logger),
	}
}

func (s *switcher) Send(p snapshot.Payload) bool {
	if s.cfg.Snapshot().Simulation {
		return s.sim.Send(p)
	}
	return s.live.Send(p)
}
