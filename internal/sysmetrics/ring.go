package sysmetrics

// ring is a fixed-capacity FIFO of samples. The oldest sample is evicted
// when a push exceeds capacity. Not safe for concurrent use — the Provider
// synchronizes.
type ring struct {
	buf      []Sample
	capacity int
	head     int // next write position
	count    int
}

func newRing(capacity int) *ring {
	return &ring{
		buf:      make([]Sample, capacity),
		capacity: capacity,
	}
}

func (r *ring) push(s Sample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
}

// snapshot returns a copy of the retained samples, oldest first.
func (r *ring) snapshot() []Sample {
	if r.count == 0 {
		return nil
	}
	result := make([]Sample, r.count)
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		result[i] = r.buf[(start+i)%r.capacity]
	}
	return result
}

func (r *ring) len() int {
	return r.count
}
