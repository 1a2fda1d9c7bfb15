// Package operation provides schedulable units of work with explicit
// lifecycles, a bounded worker-pool queue to execute them, and a
// category-based exclusivity coordinator that serializes conflicting
// work while unrelated work runs concurrently.
//
// # Operations and queues
//
// An Operation moves through Created → Pending → Ready → Executing →
// Finished, and may be cancelled at any point before Finished. It can
// depend on other operations; a queue will not execute it before every
// dependency has finished. Cancelled-but-unstarted operations skip
// their body yet still finish, so dependants are never stranded.
//
// # Exclusivity
//
// ExclusivityCoordinator maps category keys to the most recently added
// operation in each category. Adding an operation under a category
// chains it behind that tail, which yields strict FIFO per category:
//
//	coord.AddOperation(op, "login", "account-cache")
//	queue.Add(op)
//
// Operations sharing no category are unaffected by each other.
//
// # Bridging futures
//
// NewFutureOperation turns a future-producing function into an
// operation plus a mirror future, so asynchronous pipelines built with
// pkg/future can be submitted under exclusivity categories and observed
// on completion like any other future.
//
// # Observability
//
// Queues report lifecycle events to an Observer. The package ships
// NoopObserver, a slog-backed LoggingObserver, atomic BasicMetrics, and
// NewCompositeObserver to combine them.
package operation
