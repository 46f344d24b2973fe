package kernel

import "time"

// Clock is injected wherever a handler stamps or compares times, so tests can pin
// "now" and move it forward.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a plain function, mostly for tests pinning "now".
//
// Example:
//
//	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
//	clock := kernel.ClockFunc(func() time.Time { return now })
//	now = now.Add(31 * time.Minute) // the next clock.Now() sees the change
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
