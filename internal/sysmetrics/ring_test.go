package sysmetrics

import "testing"

func TestRingFIFOEviction(t *testing.T) {
	r := newRing(3)

	for i := 1; i <= 5; i++ {
		r.push(Sample{ProcessCount: i})
	}

	got := r.snapshot()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Oldest two (1, 2) evicted; retained samples in FIFO order.
	for i, want := range []int{3, 4, 5} {
		if got[i].ProcessCount != want {
			t.Errorf("snapshot[%d].ProcessCount = %d, want %d", i, got[i].ProcessCount, want)
		}
	}
}

func TestRingEmpty(t *testing.T) {
	r := newRing(3)
	if got := r.snapshot(); got != nil {
		t.Errorf("snapshot of empty ring = %v, want nil", got)
	}
	if r.len() != 0 {
		t.Errorf("len = %d, want 0", r.len())
	}
}

func TestRingPartialFill(t *testing.T) {
	r := newRing(60)
	r.push(Sample{ProcessCount: 1})
	r.push(Sample{ProcessCount: 2})

	got := r.snapshot()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ProcessCount != 1 || got[1].ProcessCount != 2 {
		t.Errorf("snapshot = %v, want oldest first", got)
	}
}
