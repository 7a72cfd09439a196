// Package snapshot assembles the shared production and host state into the
// immutable payload consumed by both the transmission and display actors.
package snapshot

import (
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sysmetrics"
)

// Payload is one fully-assembled record of machine + system state. It is
// serialized verbatim onto the wire; the field names are the protocol schema
// shared with the remote server and must not change.
type Payload struct {
	MachineID  string `json:"machine_id"`
	Timestamp  string `json:"timestamp"`
	CycleCount uint64 `json:"cycle_count"`
	State      string `json:"state"`
	Good       uint64 `json:"qtBon"`
	Reject     uint64 `json:"qtRejet"`
	Shift      string `json:"shift"`

	SystemMetrics sysmetrics.Sample `json:"system_metrics"`

	SoftwareVersion    string             `json:"software_version"`
	TransmissionStatus TransmissionStatus `json:"transmission_status"`

	StopReason *string `json:"stop_reason"`
	StopTime   *string `json:"stop_time"`

	LastStopReason   *string `json:"last_stop_reason"`
	LastStopDuration *string `json:"last_stop_duration"`
	LastStopStart    *string `json:"last_stop_start"`

	// Error is set on a degraded payload when assembly failed internally.
	Error string `json:"error,omitempty"`
}

// TransmissionStatus reports the send history carried in every payload.
type TransmissionStatus struct {
	LastSuccess *string `json:"last_success"`
	ErrorCount  uint64  `json:"error_count"`
}
