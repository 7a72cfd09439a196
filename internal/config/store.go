package config

import "sync"

// Store holds the active configuration behind a mutex. Settings updates
// replace the whole value on successful validation; the periodic actors
// read a consistent snapshot each cycle and never observe a partial update.
type Store struct {
	mu  sync.RWMutex
	cur *Config
}

// NewStore creates a Store seeded with the given configuration.
func NewStore(cfg *Config) *Store {
	return &Store{cur: cfg}
}

// Snapshot returns the current configuration value. The returned pointer
// must be treated as immutable; to change settings, build a copy and Swap.
func (s *Store) Snapshot() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Swap replaces the active configuration wholesale.
func (s *Store) Swap(cfg *Config) {
	s.mu.Lock()
	s.cur = cfg
	s.mu.Unlock()
}

// Copy returns a deep copy of the active configuration, suitable for
// mutation before a Swap.
func (s *Store) Copy() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dup := *s.cur
	dup.Shifts = append([]ShiftConfig(nil), s.cur.Shifts...)
	dup.StopReasons = append([]string(nil), s.cur.StopReasons...)
	if s.cur.Email != nil {
		email := *s.cur.Email
		email.Recipients = make(map[string]string, len(s.cur.Email.Recipients))
		for k, v := range s.cur.Email.Recipients {
			email.Recipients[k] = v
		}
		dup.Email = &email
	}
	return &dup
}
