// Package daywindow computes the instant range of "today" in a
// fixed-offset timezone. Reminder scheduling compares absolute instants
// against this window, so a day in a +05:30 zone does not align with UTC
// midnight.
package daywindow

import "time"

// Window is the inclusive [Start, End] instant range of one local calendar
// day, expressed in UTC. End is the day's final millisecond.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. Both boundaries are
// inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Today returns the window of the local calendar day containing now, for a
// zone at the given fixed UTC offset. The local date is found by shifting
// now forward by the offset, truncating with calendar rules, and shifting
// back.
func Today(now time.Time, offset time.Duration) Window {
	local := now.UTC().Add(offset)
	y, m, d := local.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(-offset)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC).Add(-offset)
	return Window{Start: start, End: end}
}
