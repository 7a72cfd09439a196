//go:build linux

package sensor

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Lines reads the production inputs from actual hardware using the Linux
// GPIO character device.
type Lines struct {
	chip    *gpiocdev.Chip
	good    *gpiocdev.Line
	reject  *gpiocdev.Line
	running *gpiocdev.Line
}

// OpenLines requests the three production input lines on gpiochip0.
func OpenLines() (*Lines, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	good, err := chip.RequestLine(PinGood, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request good pin %d: %w", PinGood, err)
	}

	reject, err := chip.RequestLine(PinReject, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		good.Close()
		chip.Close()
		return nil, fmt.Errorf("request reject pin %d: %w", PinReject, err)
	}

	running, err := chip.RequestLine(PinRunning, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		reject.Close()
		good.Close()
		chip.Close()
		return nil, fmt.Errorf("request running pin %d: %w", PinRunning, err)
	}

	return &Lines{
		chip:    chip,
		good:    good,
		reject:  reject,
		running: running,
	}, nil
}

// Pulses reads the good and reject part inputs. An active (high) input means
// a part was detected at this sampling instant.
func (l *Lines) Pulses() (bool, bool, error) {
	goodRaw, err := l.good.Value()
	if err != nil {
		return false, false, fmt.Errorf("read good pin: %w", err)
	}
	rejectRaw, err := l.reject.Value()
	if err != nil {
		return false, false, fmt.Errorf("read reject pin: %w", err)
	}
	return goodRaw == 1, rejectRaw == 1, nil
}

// Running reads the machine-running input.
func (l *Lines) Running() (bool, error) {
	raw, err := l.running.Value()
	if err != nil {
		return false, fmt.Errorf("read running pin: %w", err)
	}
	return raw == 1, nil
}

// Close releases the GPIO lines and chip.
func (l *Lines) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{l.good, l.reject, l.running} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
