package snapshot

import (
	"fmt"
	"time"
)

// wireTimestampLayout is the UTC payload timestamp format: ISO-8601 with
// microsecond precision and an explicit "Z" suffix.
const wireTimestampLayout = "2006-01-02T15:04:05.000000Z"

// formatWireTimestamp renders the payload timestamp.
func formatWireTimestamp(t time.Time) string {
	return t.UTC().Format(wireTimestampLayout)
}

// formatLocal renders event timestamps (stop start, last success) as
// RFC3339 in local time.
func formatLocal(t time.Time) string {
	return t.Format(time.RFC3339)
}

// formatClock renders a time of day as "HH:MM:SS".
func formatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// formatDuration renders a duration as "H:MM:SS" with fractional seconds
// truncated.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
