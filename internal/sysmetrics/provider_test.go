package sysmetrics

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type staticCollector struct {
	name string
	data interface{}
	err  error
}

func (c *staticCollector) Name() string { return c.name }
func (c *staticCollector) Collect(ctx context.Context) (interface{}, error) {
	return c.data, c.err
}
func (c *staticCollector) IsAvailable() bool { return true }

func testProvider(collectors ...Collector) *Provider {
	registry := NewRegistry(zap.NewNop())
	for _, c := range collectors {
		registry.Register(c)
	}
	return &Provider{
		registry: registry,
		logger:   zap.NewNop(),
		history:  newRing(historySize),
	}
}

func TestSampleAssembly(t *testing.T) {
	temp := 48.5
	p := testProvider(
		&staticCollector{name: "cpu", data: 12.5},
		&staticCollector{name: "memory", data: 61.0},
		&staticCollector{name: "temperature", data: &temp},
		&staticCollector{name: "disk", data: 80.25},
		&staticCollector{name: "network", data: NetworkResult{Sent: 1000, Recv: 2000}},
		&staticCollector{name: "host", data: HostResult{BootTime: 1700000000, ProcessCount: 142}},
	)

	s := p.Sample(context.Background())
	if s.CPUPercent != 12.5 || s.MemoryPercent != 61.0 || s.DiskPercent != 80.25 {
		t.Errorf("percent fields = %+v", s)
	}
	if s.Temperature == nil || *s.Temperature != 48.5 {
		t.Errorf("Temperature = %v, want 48.5", s.Temperature)
	}
	if s.NetworkSent != 1000 || s.NetworkRecv != 2000 {
		t.Errorf("network = (%d, %d), want (1000, 2000)", s.NetworkSent, s.NetworkRecv)
	}
	if s.BootTime != 1700000000 || s.ProcessCount != 142 {
		t.Errorf("host = (%d, %d)", s.BootTime, s.ProcessCount)
	}
}

// A failing collector degrades its fields to zero values instead of
// failing the whole sample.
func TestSampleDegradesOnCollectorFailure(t *testing.T) {
	p := testProvider(
		&staticCollector{name: "cpu", err: errors.New("cpu read failed")},
		&staticCollector{name: "memory", data: 42.0},
	)

	s := p.Sample(context.Background())
	if s.CPUPercent != 0 {
		t.Errorf("CPUPercent = %v, want 0 on failure", s.CPUPercent)
	}
	if s.MemoryPercent != 42.0 {
		t.Errorf("MemoryPercent = %v, want 42.0", s.MemoryPercent)
	}
	if s.Temperature != nil {
		t.Errorf("Temperature = %v, want nil", s.Temperature)
	}
}

func TestHistoryBounded(t *testing.T) {
	p := testProvider(&staticCollector{name: "memory", data: 1.0})

	for i := 0; i < historySize+10; i++ {
		p.Sample(context.Background())
	}

	hist := p.History()
	if len(hist) != historySize {
		t.Errorf("history length = %d, want %d", len(hist), historySize)
	}
}
