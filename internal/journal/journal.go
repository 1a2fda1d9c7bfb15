// Package journal records operation lifecycle events into an
// append-only history for audit and debugging. It mirrors the queue's
// Observer callbacks into a Recorder; backends exist for memory (tests,
// non-durable) and SQLite (embedded durability).
package journal

import (
	"context"

	"github.com/perjohansson/strand/pkg/operation"
)

// Recorder is an append-only sink for operation events.
type Recorder interface {
	operation.HistoryReader

	// AppendEvent stores one event. Events for the same operation are
	// returned by ListEvents in append order.
	AppendEvent(ctx context.Context, ev operation.Event) error
}
