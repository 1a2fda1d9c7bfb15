package operation

import (
	"github.com/perjohansson/strand/pkg/future"
)

// NewFutureOperation lifts a future-producing function into an
// Operation, bridging the push-based future world into the scheduled
// queue world. The producer is invoked when the operation starts
// executing; the operation does not finish until the produced future
// reaches its terminal completion.
//
// The returned future mirrors that completion. If the operation is
// cancelled before it starts, the producer is never invoked and the
// mirror resolves as cancelled. Cancelling the mirror cancels the
// operation, and cancelling an executing operation forwards the request
// to the in-flight future's subscription.
func NewFutureOperation[T any](producer func() *future.Future[T]) (*Operation, *future.Future[T]) {
	var resolver *future.Resolver[T]
	mirror := future.New(func(r *future.Resolver[T]) {
		resolver = r
	})

	op := New(func(op *Operation) {
		token := producer().Observe(func(c future.Completion[T]) {
			resolver.Resolve(c)
			op.Finish()
		})
		op.OnCancel(token.Cancel)
	})

	// Operations that finish without ever resolving the mirror were
	// cancelled before their body ran.
	op.OnFinish(func() {
		resolver.Resolve(future.Cancelled[T]())
	})
	resolver.SetCancelHandler(op.Cancel)

	return op, mirror
}
