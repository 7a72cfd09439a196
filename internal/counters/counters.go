// Package counters provides the durable good/reject production counters.
// Counts live in memory behind a mutex and are persisted to a small JSON
// file on every transmission cycle, on reset, and on graceful exit.
package counters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// record is the persisted counter file format. The key names are part of
// the wire vocabulary shared with the remote server.
type record struct {
	Good   uint64 `json:"qtBon"`
	Reject uint64 `json:"qtRejet"`
}

// Store holds the production counters and their backing file.
type Store struct {
	mu     sync.Mutex
	good   uint64
	reject uint64

	path   string
	logger *zap.Logger
}

// NewStore creates a counter store backed by the file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads persisted counts from the backing file into the store and
// returns them. A missing or unparsable file yields (0, 0); Load never fails.
func (s *Store) Load() (good, reject uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec record
	data, err := os.ReadFile(s.path)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &rec); jsonErr != nil {
			s.logger.Warn("Counter file unparsable, starting from zero",
				zap.String("file", s.path),
				zap.Error(jsonErr))
			rec = record{}
		}
	} else if !os.IsNotExist(err) {
		s.logger.Warn("Counter file unreadable, starting from zero",
			zap.String("file", s.path),
			zap.Error(err))
	}

	s.good = rec.Good
	s.reject = rec.Reject
	return s.good, s.reject
}

// IncrementGood adds one good part.
func (s *Store) IncrementGood() {
	s.mu.Lock()
	s.good++
	s.mu.Unlock()
}

// IncrementReject adds one rejected part.
func (s *Store) IncrementReject() {
	s.mu.Lock()
	s.reject++
	s.mu.Unlock()
}

// Counts returns the current good and reject counts.
func (s *Store) Counts() (good, reject uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.good, s.reject
}

// Reset zeroes both counters and persists the zeros synchronously.
func (s *Store) Reset() {
	s.mu.Lock()
	s.good = 0
	s.reject = 0
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Info("Production counters reset")
}

// Persist writes the current counts to the backing file. It is best-effort:
// an I/O failure is logged and reported as false, never escalated.
func (s *Store) Persist() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// persistLocked writes the counter record through a temp file and rename so
// the on-disk record is replaced atomically. Must be called with s.mu held.
func (s *Store) persistLocked() bool {
	data, err := json.Marshal(record{Good: s.good, Reject: s.reject})
	if err != nil {
		s.logger.Error("Error saving counters", zap.Error(err))
		return false
	}

	if err := writeAtomic(s.path, data); err != nil {
		s.logger.Error("Error saving counters",
			zap.String("file", s.path),
			zap.Error(err))
		return false
	}
	return true
}

// writeAtomic writes data to a sibling temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing counter file: %w", err)
	}
	return nil
}
