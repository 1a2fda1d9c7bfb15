package future

import (
	"fmt"
	"sync"
)

// Completion is the terminal outcome of a Future: a finished result
// (either a value or an error) or cancellation. A cancelled completion is
// not an error; callers that need to tell the two apart must check
// Cancelled before looking at Err.
//
// Completions are immutable values; the zero Completion is a finished
// success carrying the zero value of T.
type Completion[T any] struct {
	value     T
	err       error
	cancelled bool
}

// FinishedValue returns a completion carrying a successful value.
func FinishedValue[T any](v T) Completion[T] {
	return Completion[T]{value: v}
}

// FinishedError returns a completion carrying a failure.
func FinishedError[T any](err error) Completion[T] {
	return Completion[T]{err: err}
}

// Cancelled returns the cancelled completion.
func Cancelled[T any]() Completion[T] {
	return Completion[T]{cancelled: true}
}

// Cancelled reports whether the computation was cancelled before it
// produced a result.
func (c Completion[T]) Cancelled() bool { return c.cancelled }

// Err returns the failure carried by a finished completion, or nil for
// successes and cancellations.
func (c Completion[T]) Err() error {
	if c.cancelled {
		return nil
	}
	return c.err
}

// Succeeded reports whether the completion carries a value.
func (c Completion[T]) Succeeded() bool { return !c.cancelled && c.err == nil }

// Value returns the carried value. It is the zero value of T unless
// Succeeded reports true.
func (c Completion[T]) Value() T { return c.value }

func (c Completion[T]) String() string {
	switch {
	case c.cancelled:
		return "cancelled"
	case c.err != nil:
		return fmt.Sprintf("failure(%v)", c.err)
	default:
		return fmt.Sprintf("success(%v)", c.value)
	}
}

// Future is a single-resolution container for an eventual Completion.
//
// A Future starts out pending and transitions to resolved at most once;
// the first resolution wins and every later attempt is silently dropped.
// Observers registered before resolution are invoked exactly once, in
// registration order, when the future resolves. Observers registered
// afterwards are invoked synchronously with the stored completion.
//
// Futures are push-only: there is no blocking read. All waiting is
// expressed as "has not resolved yet" and observed via callback.
// Observer callbacks always run outside the future's internal lock, so
// an observer may safely resolve, observe, or cancel other futures.
type Future[T any] struct {
	mu         sync.Mutex
	resolved   bool
	completion Completion[T]
	observers  []func(Completion[T])

	cancelRequested bool
	cancelHandler   func()
}

// New constructs a Future and invokes setup exactly once, synchronously,
// with the resolver that completes it. The setup function is responsible
// for eventually calling Resolver.Resolve, directly or from whatever
// asynchronous work it kicks off.
func New[T any](setup func(r *Resolver[T])) *Future[T] {
	f := &Future[T]{}
	setup(&Resolver[T]{f: f})
	return f
}

// Resolved returns a future already resolved with the given value.
func Resolved[T any](v T) *Future[T] {
	return New(func(r *Resolver[T]) { r.Resolve(FinishedValue(v)) })
}

// Failed returns a future already resolved with the given error.
func Failed[T any](err error) *Future[T] {
	return New(func(r *Resolver[T]) { r.Resolve(FinishedError[T](err)) })
}

// CancelledFuture returns a future already resolved as cancelled.
func CancelledFuture[T any]() *Future[T] {
	return New(func(r *Resolver[T]) { r.Resolve(Cancelled[T]()) })
}

// Observe registers a callback invoked once with the future's terminal
// completion. If the future is already resolved, the callback runs
// synchronously on the calling goroutine. The returned Cancellation
// requests best-effort cancellation of the underlying computation; it
// does not unregister the callback.
func (f *Future[T]) Observe(callback func(Completion[T])) *Cancellation {
	f.mu.Lock()
	if f.resolved {
		c := f.completion
		f.mu.Unlock()
		callback(c)
		return &Cancellation{}
	}
	f.observers = append(f.observers, callback)
	f.mu.Unlock()
	return &Cancellation{cancel: f.requestCancel}
}

// IsResolved reports whether the future has reached its terminal
// completion. It is intended for diagnostics; production code should
// use Observe.
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

func (f *Future[T]) resolve(c Completion[T]) {
	f.mu.Lock()
	if f.resolved {
		// First resolution wins; drop the rest.
		f.mu.Unlock()
		return
	}
	f.resolved = true
	f.completion = c
	observers := f.observers
	f.observers = nil
	f.cancelHandler = nil
	f.mu.Unlock()

	for _, fn := range observers {
		fn(c)
	}
}

// requestCancel invokes the upstream cancel handler at most once.
// Resolution and cancellation are allowed to race; whichever writes the
// future's state first wins.
func (f *Future[T]) requestCancel() {
	f.mu.Lock()
	if f.resolved || f.cancelRequested {
		f.mu.Unlock()
		return
	}
	f.cancelRequested = true
	handler := f.cancelHandler
	f.cancelHandler = nil
	f.mu.Unlock()

	if handler != nil {
		handler()
		return
	}
	// No producer-side handler installed: cancellation resolves the
	// future directly.
	f.resolve(Cancelled[T]())
}

func (f *Future[T]) setCancelHandler(handler func()) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return
	}
	if f.cancelRequested {
		f.mu.Unlock()
		// Cancellation already requested while no handler was
		// installed; deliver it to the new handler now.
		if handler != nil {
			handler()
		}
		return
	}
	f.cancelHandler = handler
	f.mu.Unlock()
}

// Resolver is the producer-side capability to complete a Future. Exactly
// one Resolver exists per future, handed to the setup function of New.
type Resolver[T any] struct {
	f *Future[T]
}

// Resolve stores the terminal completion. The first call wins; any call
// after the first is ignored.
func (r *Resolver[T]) Resolve(c Completion[T]) {
	r.f.resolve(c)
}

// SetCancelHandler installs the function invoked when cancellation is
// requested before resolution, replacing any previously installed
// handler. If cancellation was already requested, handler is invoked
// immediately. The handler is called at most once, outside any lock.
//
// A typical handler tears down in-flight work and resolves the future
// as cancelled; a handler may also ignore the request and let the work
// resolve normally.
func (r *Resolver[T]) SetCancelHandler(handler func()) {
	r.f.setCancelHandler(handler)
}

// Cancellation is a consumer-side handle to request best-effort early
// termination of the computation behind a future. Cancelling an already
// resolved future is a no-op. A chain of derived futures forwards the
// request upstream to whichever stage is outstanding.
type Cancellation struct {
	once   sync.Once
	cancel func()
}

// Cancel requests cancellation. Only the first call has any effect.
func (t *Cancellation) Cancel() {
	t.once.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
	})
}
