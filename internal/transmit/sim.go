package transmit

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
)

const (
	// simLatency is the fixed delay standing in for the network round trip.
	simLatency = 100 * time.Millisecond

	// simSuccessRate is the probability a simulated send is acknowledged.
	simSuccessRate = 0.9
)

// Simulated replaces the network exchange with a fixed-latency probabilistic
// outcome. It keeps the identical history contract as the live client so
// callers cannot tell the modes apart.
type Simulated struct {
	history *Tracker
	logger  *zap.Logger
	now     func() time.Time
	sleep   func(time.Duration)

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated sender recording into the given tracker.
func NewSimulated(history *Tracker, rng *rand.Rand, logger *zap.Logger) *Simulated {
	return &Simulated{
		history: history,
		logger:  logger,
		now:     time.Now,
		sleep:   time.Sleep,
		rng:     rng,
	}
}

// Send pretends to deliver the payload, updating the history exactly as the
// live client would.
func (s *Simulated) Send(p snapshot.Payload) bool {
	s.sleep(simLatency)

	s.mu.Lock()
	success := s.rng.Float64() < simSuccessRate
	s.mu.Unlock()

	if success {
		s.history.Success(s.now())
		return true
	}
	s.history.Failure()
	s.logger.Debug("Simulated transmission failure")
	return false
}
