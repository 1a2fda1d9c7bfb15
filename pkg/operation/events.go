package operation

import (
	"context"
	"time"
)

// EventType identifies an operation history event.
type EventType string

const (
	EventEnqueued  EventType = "operation.enqueued"
	EventStarted   EventType = "operation.started"
	EventFinished  EventType = "operation.finished"
	EventCancelled EventType = "operation.cancelled"
)

// Event is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable.
type Event struct {
	OperationID string
	At          time.Time
	Type        EventType

	// Detail carries small, human-oriented context such as an elapsed
	// duration. Keep this low-volume.
	Detail string
}

// HistoryReader allows reading an operation's recorded event history.
type HistoryReader interface {
	// ListEvents returns all events recorded for an operation in
	// chronological order.
	ListEvents(ctx context.Context, operationID string) ([]Event, error)
}
