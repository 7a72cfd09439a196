// Package shift resolves the current shift name from wall-clock time and an
// ordered list of shift windows. Resolution is pure: the same time and
// schedule always produce the same name.
package shift

import "time"

// Names returned when no window matches or the schedule is malformed.
const (
	Unknown = "UNKNOWN"
	Errored = "ERROR"
)

const day = 24 * time.Hour

// Window is one named shift. Start and End are offsets since midnight.
// A window whose Start is after its End crosses midnight.
type Window struct {
	Name  string
	Start time.Duration
	End   time.Duration
}

// overnight reports whether the window wraps past midnight.
func (w Window) overnight() bool {
	return w.Start > w.End
}

// contains reports whether the time-of-day offset falls inside the window.
// Membership is half-open: the start instant belongs to the window, the end
// instant does not.
func (w Window) contains(tod time.Duration) bool {
	if w.overnight() {
		return tod >= w.Start || tod < w.End
	}
	return w.Start <= tod && tod < w.End
}

// Resolve returns the name of the first window in schedule order containing
// the given time. Overlapping windows resolve to the earliest configured one.
// No match returns Unknown; a malformed window returns Errored.
func Resolve(now time.Time, windows []Window) string {
	tod := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second

	for _, w := range windows {
		if w.Name == "" || w.Start < 0 || w.Start >= day || w.End < 0 || w.End >= day {
			return Errored
		}
		if w.contains(tod) {
			return w.Name
		}
	}
	return Unknown
}
