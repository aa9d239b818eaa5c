package ui

import (
	"sync"
	"time"
)

// deviceStatusLogInterval is the minimum spacing between device status log
// lines. The status card itself updates on every emission.
const deviceStatusLogInterval = 5 * time.Second

// statusThrottle rate-limits log lines for a chatty stream.
type statusThrottle struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

func newStatusThrottle(interval time.Duration, now func() time.Time) *statusThrottle {
	if now == nil {
		now = time.Now
	}

	return &statusThrottle{interval: interval, now: now}
}

// Allow reports whether enough time has passed since the last allowed
// call. The first call always passes.
func (t *statusThrottle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.now()
	if !t.last.IsZero() && current.Sub(t.last) < t.interval {
		return false
	}
	t.last = current

	return true
}
