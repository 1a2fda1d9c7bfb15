package journal

import (
	"context"
	"sync"

	"github.com/perjohansson/strand/pkg/operation"
)

// MemoryRecorder keeps events in memory. Non-durable; intended for
// tests and diagnostics.
type MemoryRecorder struct {
	mu     sync.Mutex
	events map[string][]operation.Event
}

var _ Recorder = (*MemoryRecorder)(nil)

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		events: make(map[string][]operation.Event),
	}
}

func (r *MemoryRecorder) AppendEvent(ctx context.Context, ev operation.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.OperationID] = append(r.events[ev.OperationID], ev)
	return nil
}

func (r *MemoryRecorder) ListEvents(ctx context.Context, operationID string) ([]operation.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.events[operationID]
	out := make([]operation.Event, len(stored))
	copy(out, stored)
	return out, nil
}
