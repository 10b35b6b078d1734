// Package biztime is the single source of wall-clock time for the application.
// All storage and transport use UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock().UTC()
}

// NowUnixMilli returns the current time as milliseconds since the epoch.
func NowUnixMilli() int64 {
	return NowUTC().UnixMilli()
}

// SetClock replaces the clock and returns a function restoring the previous one.
func SetClock(fn func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = fn
	clockMu.Unlock()

	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}
