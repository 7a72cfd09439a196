package snapshot

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/counters"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/stops"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/sysmetrics"
)

type fakeMetrics struct {
	sample sysmetrics.Sample
	panics bool
}

func (f *fakeMetrics) Sample(ctx context.Context) sysmetrics.Sample {
	if f.panics {
		panic("metrics provider exploded")
	}
	return f.sample
}

type fakeHistory struct {
	last   *time.Time
	errors uint64
}

func (f *fakeHistory) Stats() (*time.Time, uint64) { return f.last, f.errors }

type fakeRunning struct {
	running bool
	err     error
}

func (f *fakeRunning) Running() (bool, error) { return f.running, f.err }

func testConfig(t *testing.T) *config.Store {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.MachineID = "PRESS-01"
	s1, _ := config.ParseClock("00:00:00")
	e1, _ := config.ParseClock("23:59:59")
	cfg.Shifts = []config.ShiftConfig{{Name: "AllDay", Start: s1, End: e1}}
	return config.NewStore(cfg)
}

func testAssembler(t *testing.T, machine *stops.Machine, running RunningSource) (*Assembler, *counters.Store) {
	t.Helper()
	ctr := counters.NewStore(filepath.Join(t.TempDir(), "counters.json"), zap.NewNop())
	a := NewAssembler(
		testConfig(t), "2.1.0", ctr, machine,
		&fakeMetrics{sample: sysmetrics.Sample{CPUPercent: 10}},
		&fakeHistory{errors: 2},
		running,
		zap.NewNop(),
	)
	return a, ctr
}

func TestAssemblePayloadFields(t *testing.T) {
	machine := stops.New(nil, zap.NewNop())
	a, ctr := testAssembler(t, machine, &fakeRunning{running: true})

	for i := 0; i < 3; i++ {
		ctr.IncrementGood()
	}
	ctr.IncrementReject()

	p := a.Assemble(context.Background())
	if p.MachineID != "PRESS-01" {
		t.Errorf("MachineID = %q", p.MachineID)
	}
	if p.Good != 3 || p.Reject != 1 || p.CycleCount != 4 {
		t.Errorf("counts = (%d, %d, %d), want (3, 1, 4)", p.Good, p.Reject, p.CycleCount)
	}
	if p.Shift != "AllDay" {
		t.Errorf("Shift = %q, want AllDay", p.Shift)
	}
	if p.State != "RUNNING" {
		t.Errorf("State = %q, want RUNNING", p.State)
	}
	if p.SoftwareVersion != "2.1.0" {
		t.Errorf("SoftwareVersion = %q", p.SoftwareVersion)
	}
	if p.TransmissionStatus.ErrorCount != 2 || p.TransmissionStatus.LastSuccess != nil {
		t.Errorf("TransmissionStatus = %+v", p.TransmissionStatus)
	}
	if !strings.HasSuffix(p.Timestamp, "Z") {
		t.Errorf("Timestamp = %q, want Z-suffixed UTC", p.Timestamp)
	}
	if p.StopReason != nil || p.LastStopReason != nil {
		t.Error("stop fields set on a machine that never stopped")
	}
}

func TestDisplayStateDerivation(t *testing.T) {
	since := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	a, _ := testAssembler(t, stops.New(nil, zap.NewNop()), &fakeRunning{running: false})

	tests := []struct {
		name    string
		state   stops.State
		last    *stops.LastStop
		running bool
		want    string
	}{
		{
			name:  "stopped",
			state: stops.State{Stopped: true, Reason: "Maintenance", Since: since},
			want:  "STOPPED (Maintenance at 08:00:00)",
		},
		{
			name: "running with last stop",
			last: &stops.LastStop{Reason: "Jam", Duration: 3*time.Minute + 42*time.Second, Start: since},
			want: "RUNNING (Last stop: Jam for 0:03:42)",
		},
		{
			name: "last stop over an hour, fraction truncated",
			last: &stops.LastStop{Reason: "Changeover", Duration: time.Hour + 5*time.Second + 900*time.Millisecond},
			want: "RUNNING (Last stop: Changeover for 1:00:05)",
		},
		{
			name:    "raw running signal",
			running: true,
			want:    "RUNNING",
		},
		{
			name: "raw idle signal",
			want: "IDLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.running = &fakeRunning{running: tt.running}
			if got := a.displayState(tt.state, tt.last); got != tt.want {
				t.Errorf("displayState = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembleStoppedMachine(t *testing.T) {
	machine := stops.New(nil, zap.NewNop())
	a, _ := testAssembler(t, machine, &fakeRunning{running: true})

	machine.Stop("Jam")
	p := a.Assemble(context.Background())

	if p.StopReason == nil || *p.StopReason != "Jam" {
		t.Fatalf("StopReason = %v, want Jam", p.StopReason)
	}
	if p.StopTime == nil {
		t.Fatal("StopTime = nil")
	}
	if !strings.HasPrefix(p.State, "STOPPED (Jam at ") {
		t.Errorf("State = %q", p.State)
	}

	machine.Clear()
	p = a.Assemble(context.Background())
	if p.StopReason != nil {
		t.Error("StopReason still set after Clear")
	}
	if p.LastStopReason == nil || *p.LastStopReason != "Jam" {
		t.Errorf("LastStopReason = %v, want Jam", p.LastStopReason)
	}
	if p.LastStopDuration == nil || p.LastStopStart == nil {
		t.Error("last stop duration/start missing")
	}
}

func TestAssembleDegradesOnPanic(t *testing.T) {
	a, _ := testAssembler(t, stops.New(nil, zap.NewNop()), &fakeRunning{})
	a.metrics = &fakeMetrics{panics: true}

	p := a.Assemble(context.Background())
	if p.MachineID != "PRESS-01" {
		t.Errorf("MachineID = %q", p.MachineID)
	}
	if p.Timestamp == "" {
		t.Error("Timestamp empty on degraded payload")
	}
	if p.Error == "" {
		t.Error("Error empty on degraded payload")
	}
	if p.Good != 0 || p.State != "" {
		t.Errorf("degraded payload carries state: %+v", p)
	}
}

// Serializing a payload to the wire schema and parsing it back recovers the
// production fields exactly.
func TestWireRoundTrip(t *testing.T) {
	machine := stops.New(nil, zap.NewNop())
	a, ctr := testAssembler(t, machine, &fakeRunning{running: true})
	ctr.IncrementGood()
	ctr.IncrementGood()
	ctr.IncrementReject()

	p := a.Assemble(context.Background())
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	// The protocol field names, not the Go names, are on the wire.
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"machine_id", "timestamp", "cycle_count", "state",
		"qtBon", "qtRejet", "shift", "system_metrics", "software_version",
		"transmission_status", "stop_reason", "stop_time"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("wire payload missing key %q", key)
		}
	}

	var back Payload
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Good != p.Good || back.Reject != p.Reject {
		t.Errorf("round trip counts = (%d, %d), want (%d, %d)", back.Good, back.Reject, p.Good, p.Reject)
	}
	if back.Shift != p.Shift || back.State != p.State {
		t.Errorf("round trip shift/state = (%q, %q), want (%q, %q)", back.Shift, back.State, p.Shift, p.State)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{59 * time.Second, "0:00:59"},
		{3*time.Minute + 42*time.Second, "0:03:42"},
		{26*time.Hour + 3*time.Second, "26:00:03"},
		{1500 * time.Millisecond, "0:00:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
