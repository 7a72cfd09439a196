// RAM usage collector — gathers the used memory percentage.
// Uses gopsutil for cross-platform memory metrics.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryCollector collects RAM usage.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Name returns the collector identifier.
func (c *MemoryCollector) Name() string { return "memory" }

// Collect gathers the used memory percentage.
func (c *MemoryCollector) Collect(ctx context.Context) (interface{}, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return v.UsedPercent, nil
}

// IsAvailable returns true — memory metrics are available on all platforms.
func (c *MemoryCollector) IsAvailable() bool { return true }
