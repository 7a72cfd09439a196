package sysmetrics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// historySize is the number of samples retained for the history view.
const historySize = 60

// collectTimeout bounds one full collection pass.
const collectTimeout = 10 * time.Second

// Provider assembles host metrics into fixed-shape samples and keeps the
// rolling history. Sample is safe to call concurrently from the display and
// transmission actors; it degrades to a zero-valued sample rather than
// failing when collectors error out.
type Provider struct {
	registry *Registry
	logger   *zap.Logger

	mu      sync.Mutex
	history *ring
}

// NewProvider creates a Provider with the standard collector set registered.
func NewProvider(logger *zap.Logger) *Provider {
	registry := NewRegistry(logger)
	registry.Register(NewCPUCollector())
	registry.Register(NewMemoryCollector())
	registry.Register(NewTemperatureCollector(logger))
	registry.Register(NewDiskCollector())
	registry.Register(NewNetworkCollector())
	registry.Register(NewHostCollector())

	return &Provider{
		registry: registry,
		logger:   logger,
		history:  newRing(historySize),
	}
}

// Sample runs all collectors and assembles one sample. Failed collectors
// leave their fields at zero (temperature at nil); the sample is appended
// to the rolling history before being returned.
func (p *Provider) Sample(ctx context.Context) Sample {
	collectCtx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	results := p.registry.CollectAll(collectCtx)
	sample := p.assemble(results)

	p.mu.Lock()
	p.history.push(sample)
	p.mu.Unlock()

	return sample
}

// History returns a copy of the retained samples, oldest first.
func (p *Provider) History() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history.snapshot()
}

// assemble maps collector results into a unified Sample.
func (p *Provider) assemble(results map[string]interface{}) Sample {
	var sample Sample

	if data, ok := results["cpu"]; ok {
		if pct, ok := data.(float64); ok {
			sample.CPUPercent = pct
		}
	}

	if data, ok := results["memory"]; ok {
		if pct, ok := data.(float64); ok {
			sample.MemoryPercent = pct
		}
	}

	if data, ok := results["temperature"]; ok {
		if temp, ok := data.(*float64); ok {
			sample.Temperature = temp
		}
	}

	if data, ok := results["disk"]; ok {
		if pct, ok := data.(float64); ok {
			sample.DiskPercent = pct
		}
	}

	if data, ok := results["network"]; ok {
		if netIO, ok := data.(NetworkResult); ok {
			sample.NetworkSent = netIO.Sent
			sample.NetworkRecv = netIO.Recv
		}
	}

	if data, ok := results["host"]; ok {
		if h, ok := data.(HostResult); ok {
			sample.BootTime = h.BootTime
			sample.ProcessCount = h.ProcessCount
		}
	}

	return sample
}
