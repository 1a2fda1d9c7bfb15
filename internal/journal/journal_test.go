package journal

import (
	"context"
	"testing"
	"time"

	"github.com/perjohansson/strand/pkg/operation"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecorder_AppendAndList(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.AppendEvent(ctx, operation.Event{
		OperationID: "op-1",
		At:          time.Now(),
		Type:        operation.EventEnqueued,
	}))
	require.NoError(t, rec.AppendEvent(ctx, operation.Event{
		OperationID: "op-1",
		At:          time.Now(),
		Type:        operation.EventStarted,
	}))
	require.NoError(t, rec.AppendEvent(ctx, operation.Event{
		OperationID: "op-2",
		At:          time.Now(),
		Type:        operation.EventEnqueued,
	}))

	events, err := rec.ListEvents(ctx, "op-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, operation.EventEnqueued, events[0].Type)
	require.Equal(t, operation.EventStarted, events[1].Type)

	other, err := rec.ListEvents(ctx, "op-2")
	require.NoError(t, err)
	require.Len(t, other, 1)

	none, err := rec.ListEvents(ctx, "op-3")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryRecorder_ListReturnsCopy(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.AppendEvent(ctx, operation.Event{
		OperationID: "op-1",
		Type:        operation.EventEnqueued,
	}))

	events, err := rec.ListEvents(ctx, "op-1")
	require.NoError(t, err)
	events[0].Type = "mutated"

	fresh, err := rec.ListEvents(ctx, "op-1")
	require.NoError(t, err)
	require.Equal(t, operation.EventEnqueued, fresh[0].Type)
}

func TestObserver_RecordsQueueLifecycle(t *testing.T) {
	rec := NewMemoryRecorder()
	q := operation.NewQueue(operation.QueueConfig{
		MaxConcurrent: 1,
		Observer:      NewObserver(rec, nil),
	})

	op := operation.NewSync(func() {})
	require.NoError(t, q.Add(op))
	q.Wait()

	events, err := rec.ListEvents(context.Background(), op.ID())
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, operation.EventEnqueued, events[0].Type)
	require.Equal(t, operation.EventStarted, events[1].Type)
	require.Equal(t, operation.EventFinished, events[2].Type)

	for _, ev := range events {
		require.False(t, ev.At.IsZero(), "event timestamps must be set")
		require.Equal(t, op.ID(), ev.OperationID)
	}
}
