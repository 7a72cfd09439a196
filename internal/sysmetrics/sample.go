package sysmetrics

// Sample is one point-in-time record of host metrics. The JSON field names
// are the wire schema of the payload's system_metrics object. Temperature is
// nil when no thermal sensor is available.
type Sample struct {
	CPUPercent    float64  `json:"cpu_percent"`
	MemoryPercent float64  `json:"memory_percent"`
	Temperature   *float64 `json:"temperature"`
	DiskPercent   float64  `json:"disk_percent"`
	NetworkSent   uint64   `json:"network_sent"`
	NetworkRecv   uint64   `json:"network_recv"`
	BootTime      uint64   `json:"boot_time"`
	ProcessCount  int      `json:"process_count"`
}
