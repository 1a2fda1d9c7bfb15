package future

import (
	"sync"
	"time"
)

// TimerKind selects how a duration is measured while waiting.
type TimerKind int

const (
	// DeadlineTimer measures from process-monotonic time. Time spent
	// with the device asleep does not count towards the duration.
	DeadlineTimer TimerKind = iota

	// WallClockTimer tracks wall time: the wait ends once the wall
	// clock passes the computed target, even if the process slept
	// through the original deadline.
	WallClockTimer
)

func (k TimerKind) String() string {
	switch k {
	case WallClockTimer:
		return "wall-clock"
	default:
		return "deadline"
	}
}

// startTimer arranges for fn to run once after d, measured according to
// kind. The returned stop function prevents fn from running if it has
// not fired yet and reports whether it did so; fn and stop are mutually
// exclusive, so exactly one of them "wins".
func startTimer(kind TimerKind, d time.Duration, fn func()) (stop func() bool) {
	g := &timerGate{fn: fn}
	switch kind {
	case WallClockTimer:
		g.armWallClock(time.Now().Add(d))
	default:
		g.arm(d)
	}
	return g.stop
}

// timerGate guarantees the fire-vs-stop exclusivity that time.Timer.Stop
// alone cannot: once stop wins, a concurrently expiring runtime timer
// finds the gate closed and does nothing.
type timerGate struct {
	mu      sync.Mutex
	fired   bool
	stopped bool
	timer   *time.Timer
	fn      func()
}

func (g *timerGate) arm(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	g.timer = time.AfterFunc(d, func() {
		g.mu.Lock()
		if g.stopped || g.fired {
			g.mu.Unlock()
			return
		}
		g.fired = true
		fn := g.fn
		g.mu.Unlock()
		fn()
	})
}

// armWallClock re-arms a monotonic timer against the wall-clock target
// until time.Now passes it. Go timers only count monotonic time, so a
// single timer would overshoot after a system sleep; checking the wall
// clock on each expiry converges on the intended target.
func (g *timerGate) armWallClock(target time.Time) {
	remaining := time.Until(target)
	if remaining <= 0 {
		g.mu.Lock()
		if g.stopped || g.fired {
			g.mu.Unlock()
			return
		}
		g.fired = true
		fn := g.fn
		g.mu.Unlock()
		fn()
		return
	}

	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.timer = time.AfterFunc(remaining, func() {
		g.armWallClock(target)
	})
	g.mu.Unlock()
}

func (g *timerGate) stop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fired || g.stopped {
		return false
	}
	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
	}
	return true
}
