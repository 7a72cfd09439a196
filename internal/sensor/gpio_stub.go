//go:build !linux

package sensor

import "errors"

// Lines is not available on non-Linux platforms.
type Lines struct{}

// OpenLines returns an error on non-Linux platforms.
func OpenLines() (*Lines, error) {
	return nil, errors.New("sensor: gpio not supported on this platform (requires Linux)")
}

// Pulses is not implemented on non-Linux platforms.
func (l *Lines) Pulses() (bool, bool, error) {
	return false, false, errors.New("sensor: gpio not supported")
}

// Running is not implemented on non-Linux platforms.
func (l *Lines) Running() (bool, error) {
	return false, errors.New("sensor: gpio not supported")
}

// Close is a no-op on non-Linux platforms.
func (l *Lines) Close() error { return nil }
