package transmit

import (
	"bufio"
	"encoding/json"
	"math/rand"
	"net"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
)

func storeFor(t *testing.T, addr string) *config.Store {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)
	cfg := config.DefaultConfig()
	cfg.Server.Host = host
	cfg.Server.Port = port
	return config.NewStore(cfg)
}

// ackServer accepts one connection, reads one JSON line, and writes the
// given reply. The received line is sent on the returned channel.
func ackServer(t *testing.T, reply string) (net.Listener, <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		received <- line
		conn.Write([]byte(reply))
	}()
	return ln, received
}

func TestSendAcknowledged(t *testing.T) {
	ln, received := ackServer(t, "ACK")
	defer ln.Close()

	history := NewTracker()
	client := NewClient(storeFor(t, ln.Addr().String()), history, zap.NewNop())

	payload := snapshot.Payload{MachineID: "PRESS-01", Good: 7, Reject: 2}
	if !client.Send(payload) {
		t.Fatal("Send = false, want true for ACK reply")
	}

	lastSuccess, errorCount := history.Stats()
	if lastSuccess == nil {
		t.Error("lastSuccess = nil after acknowledged send")
	}
	if errorCount != 0 {
		t.Errorf("errorCount = %d, want 0", errorCount)
	}

	// The wire carries newline-terminated JSON with the protocol keys.
	line := <-received
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		t.Fatalf("wire line not JSON: %v", err)
	}
	if raw["machine_id"] != "PRESS-01" || raw["qtBon"] != float64(7) {
		t.Errorf("wire payload = %v", raw)
	}
}

func TestSendTrimsAckWhitespace(t *testing.T) {
	ln, _ := ackServer(t, "ACK\r\n")
	defer ln.Close()

	history := NewTracker()
	client := NewClient(storeFor(t, ln.Addr().String()), history, zap.NewNop())
	if !client.Send(snapshot.Payload{}) {
		t.Error("Send = false for \"ACK\\r\\n\" reply, want true")
	}
}

func TestSendRejectedReply(t *testing.T) {
	ln, _ := ackServer(t, "BUSY")
	defer ln.Close()

	history := NewTracker()
	client := NewClient(storeFor(t, ln.Addr().String()), history, zap.NewNop())

	if client.Send(snapshot.Payload{}) {
		t.Fatal("Send = true for non-ACK reply, want false")
	}
	lastSuccess, errorCount := history.Stats()
	if lastSuccess != nil {
		t.Error("lastSuccess set by failed send")
	}
	if errorCount != 1 {
		t.Errorf("errorCount = %d, want 1", errorCount)
	}
}

func TestSendConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close() // nothing listens here anymore

	history := NewTracker()
	client := NewClient(storeFor(t, addr), history, zap.NewNop())

	if client.Send(snapshot.Payload{}) {
		t.Fatal("Send = true against closed port, want false")
	}
	lastSuccess, errorCount := history.Stats()
	if lastSuccess != nil || errorCount != 1 {
		t.Errorf("history = (%v, %d), want (nil, 1)", lastSuccess, errorCount)
	}
}

// The simulated sender must keep the identical history contract as the
// live client.
func TestSimulatedHistoryContract(t *testing.T) {
	history := NewTracker()
	sim := NewSimulated(history, rand.New(rand.NewSource(7)), zap.NewNop())
	sim.sleep = func(time.Duration) {} // skip the fixed latency in tests

	successes, failures := 0, 0
	for i := 0; i < 200; i++ {
		if sim.Send(snapshot.Payload{}) {
			successes++
		} else {
			failures++
		}
	}

	if successes == 0 || failures == 0 {
		t.Fatalf("draws = (%d ok, %d failed), want both outcomes over 200 sends", successes, failures)
	}
	lastSuccess, errorCount := history.Stats()
	if lastSuccess == nil {
		t.Error("lastSuccess = nil after successful simulated sends")
	}
	if errorCount != uint64(failures) {
		t.Errorf("errorCount = %d, want %d", errorCount, failures)
	}
	if rate := float64(successes) / 200; rate < 0.8 || rate > 0.98 {
		t.Errorf("success rate = %.2f, want ≈0.9", rate)
	}
}

func TestTrackerStatsCopies(t *testing.T) {
	tr := NewTracker()
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	tr.Success(at)

	got, _ := tr.Stats()
	*got = time.Time{} // mutating the copy must not touch the tracker

	again, _ := tr.Stats()
	if !again.Equal(at) {
		t.Error("Stats returned a shared pointer")
	}
}
