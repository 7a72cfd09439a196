package transmit

import (
	"encoding/json"
	"net"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/config"
	"github.com/ayoubhammamii/RealTime-Factory-Monitor/internal/snapshot"
)

const (
	// ioTimeout bounds the connect, write, and acknowledgment read.
	ioTimeout = 5 * time.Second

	// ackToken is the literal acknowledgment expected from the server.
	ackToken = "ACK"

	// ackLimit is the maximum acknowledgment size read from the socket.
	ackLimit = 16
)

// Client sends snapshots over TCP: one connection per payload, a
// newline-terminated JSON object out, a short acknowledgment back.
type Client struct {
	cfg     *config.Store
	history *Tracker
	logger  *zap.Logger
	now     func() time.Time
}

// NewClient creates a live TCP sender recording into the given tracker.
func NewClient(cfg *config.Store, history *Tracker, logger *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// Send delivers one payload and returns whether the server acknowledged it.
// Any socket error, timeout, or non-ACK response counts as a failure; the
// next scheduled cycle is the retry.
func (c *Client) Send(p snapshot.Payload) bool {
	data, err := json.Marshal(p)
	if err != nil {
		c.history.Failure()
		c.logger.Error("Failed to marshal payload", zap.Error(err))
		return false
	}

	server := c.cfg.Snapshot().Server
	addr := net.JoinHostPort(server.Host, strconv.Itoa(server.Port))

	conn, err := net.DialTimeout("tcp", addr, ioTimeout)
	if err != nil {
		c.history.Failure()
		c.logger.Error("Socket error", zap.String("server", addr), zap.Error(err))
		return false
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	if err := writeAll(conn, append(data, '\n')); err != nil {
		c.history.Failure()
		c.logger.Error("Transmission error", zap.String("server", addr), zap.Error(err))
		return false
	}

	_ = conn.SetReadDeadline(time.Now().Add(ioTimeout))
	buf := make([]byte, ackLimit)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		c.history.Failure()
		c.logger.Error("Socket error", zap.String("server", addr), zap.Error(err))
		return false
	}

	if strings.TrimSpace(string(buf[:n])) != ackToken {
		c.history.Failure()
		c.logger.Warn("Server did not acknowledge",
			zap.String("server", addr),
			zap.String("response", strings.TrimSpace(string(buf[:n]))))
		return false
	}

	c.history.Success(c.now())
	return true
}

func writeAll(conn net.Conn, b []byte) error {
	for len(b) > 0 {
		n, err := conn.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
