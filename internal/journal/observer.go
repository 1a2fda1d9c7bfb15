package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/perjohansson/strand/pkg/operation"
)

// Observer adapts a Recorder into an operation.Observer. Append
// failures are logged and otherwise ignored: the journal is an audit
// aid and must never stall operation execution.
type Observer struct {
	rec    Recorder
	logger *slog.Logger
}

var _ operation.Observer = (*Observer)(nil)

// NewObserver wraps rec. If logger is nil, slog.Default() is used for
// reporting append failures.
func NewObserver(rec Recorder, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{rec: rec, logger: logger}
}

func (o *Observer) append(ev operation.Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if err := o.rec.AppendEvent(context.Background(), ev); err != nil {
		o.logger.Error("journal_append_failed",
			slog.String("operation_id", ev.OperationID),
			slog.String("type", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func (o *Observer) OnOperationEnqueued(op *operation.Operation) {
	o.append(operation.Event{
		OperationID: op.ID(),
		Type:        operation.EventEnqueued,
	})
}

func (o *Observer) OnOperationStarted(op *operation.Operation) {
	o.append(operation.Event{
		OperationID: op.ID(),
		Type:        operation.EventStarted,
	})
}

func (o *Observer) OnOperationFinished(op *operation.Operation, elapsed time.Duration) {
	o.append(operation.Event{
		OperationID: op.ID(),
		Type:        operation.EventFinished,
		Detail:      elapsed.String(),
	})
}

func (o *Observer) OnOperationCancelled(op *operation.Operation) {
	o.append(operation.Event{
		OperationID: op.ID(),
		Type:        operation.EventCancelled,
	})
}
