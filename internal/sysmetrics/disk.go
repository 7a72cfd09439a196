// Disk usage collector — gathers the used percentage of the root filesystem.
// Uses gopsutil for cross-platform disk metrics.
package sysmetrics

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskCollector collects root filesystem usage.
type DiskCollector struct{}

// NewDiskCollector creates a new disk collector.
func NewDiskCollector() *DiskCollector {
	return &DiskCollector{}
}

// Name returns the collector identifier.
func (c *DiskCollector) Name() string { return "disk" }

// Collect gathers the used percentage of the root filesystem — the single
// volume that matters on the panel host.
func (c *DiskCollector) Collect(ctx context.Context) (interface{}, error) {
	usage, err := disk.UsageWithContext(ctx, rootMount)
	if err != nil {
		return nil, err
	}
	return usage.UsedPercent, nil
}

// IsAvailable returns true — disk metrics are available on all platforms.
func (c *DiskCollector) IsAvailable() bool { return true }
