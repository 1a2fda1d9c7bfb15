// Package strand provides a small asynchronous composition substrate:
// single-resolution futures with explicit cancellation, retry with
// backoff, and a mutual-exclusion scheduler that serializes conflicting
// work while unrelated work runs concurrently.
//
// Strand is designed for clients and services that juggle many small
// asynchronous flows (logins, cache refreshes, reconciliation passes,
// settings pushes) where the correctness hazards are races,
// double-resolution, leaked cancellation, and head-of-line blocking.
// It runs fully in-process and integrates cleanly into existing
// codebases.
//
// # Core Concepts
//
// The strand programming model is intentionally small:
//
//  1. Future / Resolver
//  2. Combinators
//  3. Retry
//  4. Operation / Queue
//  5. ExclusivityCoordinator / Scheduler
//
// # Future and Resolver
//
// A Future is a container for exactly one eventual Completion: a
// success, a failure, or cancellation. The producer side holds a
// Resolver and resolves at most once; every later attempt is dropped.
// Consumers subscribe with Observe and receive the completion exactly
// once, on whichever goroutine delivers it, unless pinned with
// ReceiveOn.
//
// Cancellation is cooperative and best-effort. A Cancellation token
// forwards the request upstream through a combinator chain to whichever
// stage is outstanding; work already dispatched may still complete
// normally and win the race.
//
// # Combinators
//
// Map, MapError, Then, Schedule, ReceiveOn, and Delay compose pipelines
// declaratively:
//
//	f := strand.Map(fetchRelays(), pickRelay)
//	f = f.Delay(2*time.Second, strand.DeadlineTimer)
//	token := f.Observe(apply)
//
// # Retry
//
// RetryFuture re-invokes a producer under a bounded RetryStrategy,
// built fluently:
//
//	strategy := strand.Retry(3).WithConstantWait(2 * time.Second).Strategy()
//	f := strand.RetryFuture(strategy, startRequest)
//
// On exhaustion the last failure surfaces unchanged; retry state never
// leaks into the result.
//
// # Operations and exclusivity
//
// An Operation lifts work into a schedulable unit with an explicit
// lifecycle and dependency edges. The Scheduler submits operations
// under category keys; operations sharing a category run strictly FIFO,
// operations sharing none run concurrently:
//
//	sched := strand.NewScheduler(strand.SchedulerConfig{})
//	op, result := strand.NewFutureOperation(pushSettings)
//	_ = sched.Submit(op, "tunnel-settings")
//
// # Observability
//
// Queues report lifecycle events to an Observer: a slog-backed
// LoggingObserver, atomic BasicMetrics, a memory or SQLite Journal for
// audit history, or any combination via NewCompositeObserver.
//
// See the examples directory for end-to-end usage.
package strand
