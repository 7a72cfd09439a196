// CPU usage collector — gathers overall CPU utilization.
// Uses gopsutil for cross-platform CPU metrics.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CPUCollector collects overall CPU usage.
type CPUCollector struct{}

// NewCPUCollector creates a new CPU collector.
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

// Name returns the collector identifier.
func (c *CPUCollector) Name() string { return "cpu" }

// Collect gathers the overall CPU usage percentage. A zero interval compares
// against the previous call, so the read never blocks the sampling tick.
func (c *CPUCollector) Collect(ctx context.Context) (interface{}, error) {
	overall, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}
	if len(overall) == 0 {
		return float64(0), nil
	}
	return overall[0], nil
}

// IsAvailable returns true — CPU metrics are available on all platforms.
func (c *CPUCollector) IsAvailable() bool { return true }
