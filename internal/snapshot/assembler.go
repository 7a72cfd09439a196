package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/counters"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/shift"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/stops"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sysmetrics"
)

// MetricsSource supplies one host metrics sample per collection cycle.
type MetricsSource interface {
	Sample(ctx context.Context) sysmetrics.Sample
}

// HistorySource reports the transmission history carried in the payload.
type HistorySource interface {
	Stats() (lastSuccess *time.Time, errorCount uint64)
}

// RunningSource reads the raw machine-running signal.
type RunningSource interface {
	Running() (bool, error)
}

// Assembler combines the shared state into one immutable Payload per call.
// Assemble is safe to invoke concurrently from the display and transmission
// actors; it has no side effects beyond reading its sources.
type Assembler struct {
	cfg      *config.Store
	version  string
	counters *counters.Store
	stops    *stops.Machine
	metrics  MetricsSource
	history  HistorySource
	running  RunningSource
	logger   *zap.Logger
	now      func() time.Time
}

// NewAssembler wires an Assembler over the shared state containers.
func NewAssembler(
	cfg *config.Store,
	version string,
	ctr *counters.Store,
	machine *stops.Machine,
	metrics MetricsSource,
	history HistorySource,
	running RunningSource,
	logger *zap.Logger,
) *Assembler {
	return &Assembler{
		cfg:      cfg,
		version:  version,
		counters: ctr,
		stops:    machine,
		metrics:  metrics,
		history:  history,
		running:  running,
		logger:   logger,
		now:      time.Now,
	}
}

// Assemble builds one payload from the current state. An internal failure
// never escapes: it degrades to a payload carrying only the machine id,
// timestamp, and error description.
func (a *Assembler) Assemble(ctx context.Context) (p Payload) {
	machineID := a.cfg.Snapshot().MachineID

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Data collection error", zap.Any("panic", r))
			p = Payload{
				MachineID: machineID,
				Timestamp: formatWireTimestamp(a.now()),
				Error:     fmt.Sprint(r),
			}
		}
	}()

	cfg := a.cfg.Snapshot()
	good, reject := a.counters.Counts()
	stopState := a.stops.State()
	lastStop := a.stops.LastStop()
	metrics := a.metrics.Sample(ctx)

	p = Payload{
		MachineID:       cfg.MachineID,
		Timestamp:       formatWireTimestamp(a.now()),
		CycleCount:      good + reject,
		State:           a.displayState(stopState, lastStop),
		Good:            good,
		Reject:          reject,
		Shift:           shift.Resolve(a.now(), cfg.ShiftWindows()),
		SystemMetrics:   metrics,
		SoftwareVersion: a.version,
	}

	lastSuccess, errorCount := a.history.Stats()
	p.TransmissionStatus = TransmissionStatus{ErrorCount: errorCount}
	if lastSuccess != nil {
		s := formatLocal(*lastSuccess)
		p.TransmissionStatus.LastSuccess = &s
	}

	if stopState.Stopped {
		reason := stopState.Reason
		since := formatLocal(stopState.Since)
		p.StopReason = &reason
		p.StopTime = &since
	}

	if lastStop != nil {
		reason := lastStop.Reason
		duration := formatDuration(lastStop.Duration)
		start := formatLocal(lastStop.Start)
		p.LastStopReason = &reason
		p.LastStopDuration = &duration
		p.LastStopStart = &start
	}

	return p
}

// displayState derives the operator-facing state string:
//
//	stopped          → "STOPPED ({reason} at {HH:MM:SS})"
//	last stop known  → "RUNNING (Last stop: {reason} for {H:MM:SS})"
//	otherwise        → the raw running/idle signal
func (a *Assembler) displayState(st stops.State, last *stops.LastStop) string {
	if st.Stopped {
		return fmt.Sprintf("STOPPED (%s at %s)", st.Reason, formatClock(st.Since))
	}
	if last != nil {
		return fmt.Sprintf("RUNNING (Last stop: %s for %s)", last.Reason, formatDuration(last.Duration))
	}

	running, err := a.running.Running()
	if err != nil {
		a.logger.Warn("Running signal read failed", zap.Error(err))
		return "IDLE"
	}
	if running {
		return "RUNNING"
	}
	return "IDLE"
}
