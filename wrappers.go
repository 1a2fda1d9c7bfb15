package strand

import (
	"time"

	"github.com/perjohansson/strand/pkg/future"
	"github.com/perjohansson/strand/pkg/operation"
)

// NewFuture constructs a future, invoking setup exactly once with the
// resolver that completes it.
func NewFuture[T any](setup func(r *Resolver[T])) *Future[T] {
	return future.New(setup)
}

// ResolvedFuture returns a future already resolved with v.
func ResolvedFuture[T any](v T) *Future[T] {
	return future.Resolved(v)
}

// FailedFuture returns a future already resolved with err.
func FailedFuture[T any](err error) *Future[T] {
	return future.Failed[T](err)
}

// Map derives a future whose successful value is transformed by fn.
func Map[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	return future.Map(f, fn)
}

// Then chains fn after a successful completion, forwarding the
// completion of the future fn produces.
func Then[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	return future.Then(f, fn)
}

// Schedule defers starting the computation until exec runs it.
func Schedule[T any](exec Executor, producer func() *Future[T]) *Future[T] {
	return future.Schedule(exec, producer)
}

// RetryFuture invokes producer under the given strategy until it
// succeeds or the attempt budget is exhausted.
func RetryFuture[T any](strategy RetryStrategy, producer func() *Future[T]) *Future[T] {
	return future.Retry(strategy, producer)
}

// DelayedValue returns a future resolving with v after d, measured by
// the given timer kind. The delay is cancellable up to the moment the
// timer fires.
func DelayedValue[T any](v T, d time.Duration, kind TimerKind) *Future[T] {
	return future.Resolved(v).Delay(d, kind)
}

// NewFutureOperation lifts a future-producing function into an
// operation plus a mirror future of its completion.
func NewFutureOperation[T any](producer func() *Future[T]) (*Operation, *Future[T]) {
	return operation.NewFutureOperation(producer)
}
