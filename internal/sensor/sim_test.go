package sensor

import (
	"math/rand"
	"sync"
	"testing"
)

func TestSimulatorProbabilities(t *testing.T) {
	const draws = 20000
	sim := NewSimulator(rand.New(rand.NewSource(1)))

	var good, reject int
	for i := 0; i < draws; i++ {
		g, r, err := sim.Pulses()
		if err != nil {
			t.Fatal(err)
		}
		if g {
			good++
		}
		if r {
			reject++
		}
	}

	goodRate := float64(good) / draws
	rejectRate := float64(reject) / draws
	if goodRate < 0.65 || goodRate > 0.75 {
		t.Errorf("good rate = %.3f, want ≈0.7", goodRate)
	}
	if rejectRate < 0.07 || rejectRate > 0.13 {
		t.Errorf("reject rate = %.3f, want ≈0.1", rejectRate)
	}
}

func TestSimulatorRunning(t *testing.T) {
	const draws = 20000
	sim := NewSimulator(rand.New(rand.NewSource(2)))

	running := 0
	for i := 0; i < draws; i++ {
		r, err := sim.Running()
		if err != nil {
			t.Fatal(err)
		}
		if r {
			running++
		}
	}

	rate := float64(running) / draws
	if rate < 0.75 || rate > 0.85 {
		t.Errorf("running rate = %.3f, want ≈0.8", rate)
	}
}

// The simulator is shared by the production and display actors; concurrent
// draws must not race on the underlying source.
func TestSimulatorConcurrentDraws(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(3)))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				sim.Pulses()
				sim.Running()
			}
		}()
	}
	wg.Wait()
}
