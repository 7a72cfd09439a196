// Package monitor runs the periodic actors: the transmission cycle, the
// display refresh, and the production sensor poll. The actors share the
// counter store and stop state machine as the single source of truth and
// are independently scheduled so slow network I/O never stalls the panel.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/counters"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sensor"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/stops"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/transmit"
)

const (
	// displayInterval is the panel refresh cadence.
	displayInterval = 500 * time.Millisecond

	// productionInterval is the sensor polling cadence.
	productionInterval = 500 * time.Millisecond
)

// Runner owns the periodic actor goroutines.
type Runner struct {
	cfg       *config.Store
	assembler *snapshot.Assembler
	sender    transmit.Sender
	counters  *counters.Store
	sensor    sensor.Sensor
	stops     *stops.Machine
	holder    *Holder
	logger    *zap.Logger
}

// New creates a Runner over the shared state containers.
func New(
	cfg *config.Store,
	assembler *snapshot.Assembler,
	sender transmit.Sender,
	ctr *counters.Store,
	sens sensor.Sensor,
	machine *stops.Machine,
	holder *Holder,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		cfg:       cfg,
		assembler: assembler,
		sender:    sender,
		counters:  ctr,
		sensor:    sens,
		stops:     machine,
		holder:    holder,
		logger:    logger,
	}
}

// Run starts the three actors and blocks until the context is cancelled.
// On shutdown every loop exits within one polling quantum and the counters
// are persisted one final time.
func (r *Runner) Run(ctx context.Context) {
	done := make(chan struct{}, 3)

	go func() { r.transmitLoop(ctx); done <- struct{}{} }()
	go func() { r.displayLoop(ctx); done <- struct{}{} }()
	go func() { r.productionLoop(ctx); done <- struct{}{} }()

	for i := 0; i < 3; i++ {
		<-done
	}

	r.counters.Persist()
	r.logger.Info("Periodic actors stopped, counters persisted")
}

// transmitLoop assembles and sends one snapshot per sampling interval.
// The interval is re-read from the active configuration each cycle so a
// settings change takes effect on the next tick.
func (r *Runner) transmitLoop(ctx context.Context) {
	r.logger.Info("Starting data transmission loop")

	timer := time.NewTimer(0) // first cycle runs immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			r.iterate("transmit", func() { r.transmitTick(ctx) })
			timer.Reset(r.cfg.Snapshot().SamplingInterval.Duration)
		}
	}
}

// transmitTick runs one transmission cycle: assemble, persist counters
// best-effort, send, log the outcome.
func (r *Runner) transmitTick(ctx context.Context) {
	payload := r.assembler.Assemble(ctx)
	r.counters.Persist()

	if r.sender.Send(payload) {
		r.logger.Info("Data sent successfully")
	} else {
		r.logger.Warn("Failed to send data")
	}
}

// displayLoop refreshes the latest-snapshot holder. It never touches the
// network and is never blocked by the transmission actor.
func (r *Runner) displayLoop(ctx context.Context) {
	ticker := time.NewTicker(displayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.iterate("display", func() { r.displayTick(ctx) })
		}
	}
}

func (r *Runner) displayTick(ctx context.Context) {
	p := r.assembler.Assemble(ctx)
	r.holder.Set(p)

	r.logger.Debug("Panel refresh",
		zap.String("state", p.State),
		zap.Uint64("good", p.Good),
		zap.Uint64("reject", p.Reject),
		zap.String("shift", p.Shift))
}

// productionLoop polls the part sensors and applies counter increments
// while no stop is active.
func (r *Runner) productionLoop(ctx context.Context) {
	ticker := time.NewTicker(productionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.iterate("production", r.productionTick)
		}
	}
}

func (r *Runner) productionTick() {
	if r.stops.State().Stopped {
		return
	}

	good, reject, err := r.sensor.Pulses()
	if err != nil {
		r.logger.Error("Sensor read failed", zap.Error(err))
		return
	}
	if good {
		r.counters.IncrementGood()
	}
	if reject {
		r.counters.IncrementReject()
	}
}

// iterate wraps one actor iteration so a panic cannot terminate the loop.
func (r *Runner) iterate(actor string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Actor iteration failed",
				zap.String("actor", actor),
				zap.Any("panic", rec))
		}
	}()
	fn()
}
