// Package future provides a single-resolution future/promise primitive
// with explicit, cooperative cancellation, plus the combinators used to
// compose asynchronous pipelines on top of it.
//
// # Futures and Resolvers
//
// A Future is constructed with a setup function that receives the
// producer-side Resolver:
//
//	f := future.New(func(r *future.Resolver[string]) {
//	    go func() {
//	        v, err := fetch()
//	        if err != nil {
//	            r.Resolve(future.FinishedError[string](err))
//	            return
//	        }
//	        r.Resolve(future.FinishedValue(v))
//	    }()
//	})
//
// Consumers subscribe with Observe, which returns a Cancellation handle:
//
//	token := f.Observe(func(c future.Completion[string]) { ... })
//	token.Cancel() // best-effort; a no-op once resolved
//
// Resolution happens at most once. Concurrent resolve attempts, and
// resolution racing cancellation, are settled by a single guarded state
// write: whoever writes first wins and the rest is silently dropped.
//
// # Combinators
//
// Map, MapError, Then, Schedule, ReceiveOn, and Delay each derive a new
// future from an upstream one, forwarding cancellation to whichever
// stage is outstanding. Exactly one terminal completion reaches the
// final observer of a chain.
//
// # Retry
//
// Retry wraps a future-producing function with a bounded attempt budget
// and a wait policy between attempts:
//
//	f := future.Retry(future.RetryStrategy{
//	    MaxAttempts: 3,
//	    Wait:        future.ConstantWait(2 * time.Second),
//	}, startRequest)
//
// Waits are cancellable and can be measured against monotonic time
// (DeadlineTimer) or wall time (WallClockTimer), which matters when the
// device sleeps mid-wait.
package future
