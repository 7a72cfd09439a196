// Package sensor provides the production line input signals with hardware
// abstraction. The live implementation reads three digital inputs through
// the Linux GPIO character device; the simulator replaces it with a
// randomized generator for development and tests.
package sensor

// Sensor reads production line signals. One Pulses call corresponds to one
// sampling tick: a true value means a part was detected on that input since
// the signal is high at the sampling instant.
type Sensor interface {
	// Pulses returns whether the good-part and reject-part inputs are active.
	Pulses() (good, reject bool, err error)

	// Running returns the state of the machine-running input.
	Running() (bool, error)

	// Close releases sensor resources.
	Close() error
}

// Digital input pins (BCM numbering) on the automation carrier board.
const (
	PinGood    = 26
	PinReject  = 20
	PinRunning = 21
)
