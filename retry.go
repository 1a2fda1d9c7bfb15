package strand

import "time"

// RetryBuilder provides a fluent way to construct RetryStrategy values
// for use with RetryFuture.
type RetryBuilder struct {
	strategy RetryStrategy
}

// Retry creates a RetryBuilder with the given maxAttempts.
//
// maxAttempts <= 0 is treated as 1 (no retries).
func Retry(maxAttempts int) RetryBuilder {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return RetryBuilder{
		strategy: RetryStrategy{
			MaxAttempts: maxAttempts,
			Wait:        ImmediateWait(),
			Timer:       DeadlineTimer,
		},
	}
}

// Immediate disables any wait between attempts.
// Retries still respect MaxAttempts.
func (r RetryBuilder) Immediate() RetryBuilder {
	s := r.strategy
	s.Wait = ImmediateWait()
	return RetryBuilder{strategy: s}
}

// WithConstantWait configures a constant wait between attempts.
//
// Example:
//
//	Retry(3).WithConstantWait(2 * time.Second)
func (r RetryBuilder) WithConstantWait(d time.Duration) RetryBuilder {
	s := r.strategy
	s.Wait = ConstantWait(d)
	return RetryBuilder{strategy: s}
}

// WithWallClockTimer measures waits against wall time instead of
// process-monotonic time, so a wait keeps counting down while the
// device sleeps.
func (r RetryBuilder) WithWallClockTimer() RetryBuilder {
	s := r.strategy
	s.Timer = WallClockTimer
	return RetryBuilder{strategy: s}
}

// WithDeadlineTimer measures waits against process-monotonic time.
// This is the default.
func (r RetryBuilder) WithDeadlineTimer() RetryBuilder {
	s := r.strategy
	s.Timer = DeadlineTimer
	return RetryBuilder{strategy: s}
}

// Strategy returns the underlying RetryStrategy to be passed to
// RetryFuture.
func (r RetryBuilder) Strategy() RetryStrategy {
	return r.strategy
}
