package future

import (
	"sync"
	"time"
)

// Map derives a future whose successful value is transformed by fn.
// Failures and cancellations pass through unchanged, and cancelling the
// derived future forwards the request upstream. fn runs on whatever
// goroutine delivers the upstream completion.
func Map[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	return New(func(r *Resolver[U]) {
		token := f.Observe(func(c Completion[T]) {
			switch {
			case c.Cancelled():
				r.Resolve(Cancelled[U]())
			case c.Err() != nil:
				r.Resolve(FinishedError[U](c.Err()))
			default:
				r.Resolve(FinishedValue(fn(c.Value())))
			}
		})
		r.SetCancelHandler(token.Cancel)
	})
}

// MapError derives a future whose failure is transformed by fn.
// Successes and cancellations pass through unchanged.
func (f *Future[T]) MapError(fn func(error) error) *Future[T] {
	return New(func(r *Resolver[T]) {
		token := f.Observe(func(c Completion[T]) {
			if !c.Cancelled() && c.Err() != nil {
				r.Resolve(FinishedError[T](fn(c.Err())))
				return
			}
			r.Resolve(c)
		})
		r.SetCancelHandler(token.Cancel)
	})
}

// Then chains fn after a successful upstream completion, forwarding the
// completion of the future fn produces. Failures and cancellations
// short-circuit without invoking fn. Cancelling the combined future
// cancels whichever stage is outstanding: the upstream future while the
// continuation has not started, or the produced future once it has.
func Then[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	return New(func(r *Resolver[U]) {
		var mu sync.Mutex
		var inner *Cancellation
		var cancelled bool

		upstream := f.Observe(func(c Completion[T]) {
			switch {
			case c.Cancelled():
				r.Resolve(Cancelled[U]())
				return
			case c.Err() != nil:
				r.Resolve(FinishedError[U](c.Err()))
				return
			}

			mu.Lock()
			if cancelled {
				mu.Unlock()
				r.Resolve(Cancelled[U]())
				return
			}
			mu.Unlock()

			token := fn(c.Value()).Observe(r.Resolve)

			mu.Lock()
			if cancelled {
				mu.Unlock()
				token.Cancel()
				return
			}
			inner = token
			mu.Unlock()
		})

		r.SetCancelHandler(func() {
			mu.Lock()
			cancelled = true
			token := inner
			mu.Unlock()
			if token != nil {
				token.Cancel()
				return
			}
			upstream.Cancel()
		})
	})
}

// Schedule defers starting the computation until the given executor runs
// it: producer is not invoked before then, and not at all if the future
// is cancelled first (the result resolves as cancelled instead).
func Schedule[T any](exec Executor, producer func() *Future[T]) *Future[T] {
	return New(func(r *Resolver[T]) {
		var mu sync.Mutex
		var inner *Cancellation
		var cancelled bool

		exec.Execute(func() {
			mu.Lock()
			if cancelled {
				mu.Unlock()
				r.Resolve(Cancelled[T]())
				return
			}
			mu.Unlock()

			token := producer().Observe(r.Resolve)

			mu.Lock()
			if cancelled {
				mu.Unlock()
				token.Cancel()
				return
			}
			inner = token
			mu.Unlock()
		})

		r.SetCancelHandler(func() {
			mu.Lock()
			cancelled = true
			token := inner
			mu.Unlock()
			if token != nil {
				token.Cancel()
			}
			// If the executor has not run yet, the dispatched closure
			// observes the flag and resolves cancelled itself.
		})
	})
}

// ReceiveOn redispatches the completion onto the given executor before
// invoking downstream observers, guaranteeing they never run on an
// unexpected context.
func (f *Future[T]) ReceiveOn(exec Executor) *Future[T] {
	return New(func(r *Resolver[T]) {
		token := f.Observe(func(c Completion[T]) {
			exec.Execute(func() { r.Resolve(c) })
		})
		r.SetCancelHandler(token.Cancel)
	})
}

// Delay gates a successful upstream completion behind a timer: the value
// is forwarded no earlier than d after the upstream resolved. Failures
// and cancellations pass through without waiting. Cancelling the derived
// future stops the timer if it has not fired; the downstream observer
// then sees cancelled and never the delayed value.
func (f *Future[T]) Delay(d time.Duration, kind TimerKind) *Future[T] {
	return New(func(r *Resolver[T]) {
		var mu sync.Mutex
		var stopTimer func() bool
		var cancelled bool

		upstream := f.Observe(func(c Completion[T]) {
			if !c.Succeeded() {
				r.Resolve(c)
				return
			}

			mu.Lock()
			if cancelled {
				mu.Unlock()
				r.Resolve(Cancelled[T]())
				return
			}
			stopTimer = startTimer(kind, d, func() {
				r.Resolve(c)
			})
			mu.Unlock()
		})

		r.SetCancelHandler(func() {
			mu.Lock()
			cancelled = true
			stop := stopTimer
			mu.Unlock()
			if stop != nil {
				if stop() {
					r.Resolve(Cancelled[T]())
				}
				return
			}
			upstream.Cancel()
		})
	})
}
