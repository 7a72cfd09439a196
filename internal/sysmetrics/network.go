// Network I/O collector — gathers cumulative RX/TX byte counters.
// Uses gopsutil for cross-platform network metrics.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/net"
)

// NetworkResult holds the cumulative network byte counters since boot.
// The remote server diffs consecutive payloads itself, so the collector
// reports totals rather than deltas.
type NetworkResult struct {
	Sent uint64
	Recv uint64
}

// NetworkCollector collects network I/O totals.
type NetworkCollector struct{}

// NewNetworkCollector creates a new network collector.
func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{}
}

// Name returns the collector identifier.
func (c *NetworkCollector) Name() string { return "network" }

// Collect gathers the cumulative sent/received byte counters across all interfaces.
func (c *NetworkCollector) Collect(ctx context.Context) (interface{}, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return NetworkResult{}, nil
	}
	return NetworkResult{
		Sent: counters[0].BytesSent,
		Recv: counters[0].BytesRecv,
	}, nil
}

// IsAvailable returns true — network metrics are available on all platforms.
func (c *NetworkCollector) IsAvailable() bool { return true }
