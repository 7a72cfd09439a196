package sensor

import (
	"math/rand"
	"sync"
)

// Per-tick probabilities of the simulated line. Good and reject draws are
// independent; both may fire in the same tick.
const (
	probGood    = 0.7
	probReject  = 0.1
	probRunning = 0.8
)

// Simulator generates randomized production signals in place of hardware.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a Simulator drawing from the given source.
func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Pulses draws independent good and reject signals.
func (s *Simulator) Pulses() (good, reject bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	good = s.rng.Float64() < probGood
	reject = s.rng.Float64() < probReject
	return good, reject, nil
}

// Running draws the machine-running signal.
func (s *Simulator) Running() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < probRunning, nil
}

// Close implements Sensor; the simulator holds no resources.
func (s *Simulator) Close() error { return nil }
