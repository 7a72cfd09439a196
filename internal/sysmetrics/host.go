// Host info collector — gathers boot time and process count.
// Uses gopsutil for cross-platform host metrics.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// HostResult holds boot time (Unix seconds) and the process count.
type HostResult struct {
	BootTime     uint64
	ProcessCount int
}

// HostCollector collects host-level metrics.
type HostCollector struct{}

// NewHostCollector creates a new host collector.
func NewHostCollector() *HostCollector {
	return &HostCollector{}
}

// Name returns the collector identifier.
func (c *HostCollector) Name() string { return "host" }

// Collect gathers the boot time and the number of running processes.
func (c *HostCollector) Collect(ctx context.Context) (interface{}, error) {
	boot, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return nil, err
	}

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		// Non-fatal: report boot time with a zero process count.
		pids = nil
	}

	return HostResult{
		BootTime:     boot,
		ProcessCount: len(pids),
	}, nil
}

// IsAvailable returns true — host metrics are available on all platforms.
func (c *HostCollector) IsAvailable() bool { return true }
