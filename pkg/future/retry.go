package future

import (
	"sync"
	"time"
)

// WaitPolicy describes the spacing between retry attempts as a pure,
// infinite sequence of durations. The zero value waits not at all.
type WaitPolicy struct {
	delay time.Duration
}

// ImmediateWait returns a policy that never waits between attempts.
func ImmediateWait() WaitPolicy { return WaitPolicy{} }

// ConstantWait returns a policy that waits d between every pair of
// attempts.
func ConstantWait(d time.Duration) WaitPolicy { return WaitPolicy{delay: d} }

// NextDelay returns the wait preceding the given retry attempt
// (1-based: the delay before attempt 2 is NextDelay(1)).
func (p WaitPolicy) NextDelay(attempt int) time.Duration { return p.delay }

// RetryStrategy is an immutable description of a bounded retry budget.
type RetryStrategy struct {
	// MaxAttempts is the total number of producer invocations,
	// including the first. Values below 1 are treated as 1.
	MaxAttempts int

	// Wait spaces consecutive attempts.
	Wait WaitPolicy

	// Timer selects how the wait is measured.
	Timer TimerKind
}

// Retry invokes producer until it succeeds or the attempt budget is
// exhausted. The first attempt starts immediately. After a failure, if
// attempts remain, the loop waits according to the strategy (a
// cancellable delay) and re-invokes the producer. On success the result
// resolves immediately with that success; on exhaustion it resolves with
// the last observed failure unchanged, never a synthesized error.
//
// Cancelling the returned future during a wait or an in-flight attempt
// cancels the outstanding stage and terminates the loop; no further
// attempts are scheduled.
func Retry[T any](strategy RetryStrategy, producer func() *Future[T]) *Future[T] {
	if strategy.MaxAttempts < 1 {
		strategy.MaxAttempts = 1
	}
	return New(func(r *Resolver[T]) {
		loop := &retryLoop[T]{
			strategy: strategy,
			producer: producer,
			resolver: r,
		}
		r.SetCancelHandler(loop.cancel)
		loop.runAttempt()
	})
}

// retryLoop guards the attempt counter and the outstanding cancellation
// handle against concurrent cancel-vs-schedule races.
type retryLoop[T any] struct {
	strategy RetryStrategy
	producer func() *Future[T]
	resolver *Resolver[T]

	mu        sync.Mutex
	attempt   int
	cancelled bool
	current   *Cancellation // in-flight attempt, if any
	stopWait  func() bool   // pending inter-attempt timer, if any
}

func (l *retryLoop[T]) runAttempt() {
	l.mu.Lock()
	if l.cancelled {
		l.mu.Unlock()
		l.resolver.Resolve(Cancelled[T]())
		return
	}
	l.attempt++
	l.mu.Unlock()

	token := l.producer().Observe(l.handleCompletion)

	l.mu.Lock()
	if l.cancelled {
		l.mu.Unlock()
		token.Cancel()
		return
	}
	l.current = token
	l.mu.Unlock()
}

func (l *retryLoop[T]) handleCompletion(c Completion[T]) {
	if c.Cancelled() || c.Err() == nil {
		l.resolver.Resolve(c)
		return
	}

	l.mu.Lock()
	l.current = nil
	if l.cancelled {
		l.mu.Unlock()
		l.resolver.Resolve(Cancelled[T]())
		return
	}
	if l.attempt >= l.strategy.MaxAttempts {
		l.mu.Unlock()
		// Budget exhausted: surface the last failure as-is.
		l.resolver.Resolve(c)
		return
	}

	wait := l.strategy.Wait.NextDelay(l.attempt)
	if wait <= 0 {
		l.mu.Unlock()
		l.runAttempt()
		return
	}
	l.stopWait = startTimer(l.strategy.Timer, wait, func() {
		l.mu.Lock()
		l.stopWait = nil
		l.mu.Unlock()
		l.runAttempt()
	})
	l.mu.Unlock()
}

func (l *retryLoop[T]) cancel() {
	l.mu.Lock()
	if l.cancelled {
		l.mu.Unlock()
		return
	}
	l.cancelled = true
	token := l.current
	stop := l.stopWait
	l.current = nil
	l.stopWait = nil
	l.mu.Unlock()

	if stop != nil {
		if stop() {
			l.resolver.Resolve(Cancelled[T]())
		}
		return
	}
	if token != nil {
		// The attempt's own completion (usually cancelled, possibly a
		// normal result that wins the race) resolves the loop.
		token.Cancel()
		return
	}
	l.resolver.Resolve(Cancelled[T]())
}
