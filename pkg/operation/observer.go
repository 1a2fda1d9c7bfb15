package operation

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from a Queue for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be
// done asynchronously so as not to delay operation execution.
type Observer interface {
	// OnOperationEnqueued is called when an operation is added to a
	// queue, before any dependency has been satisfied.
	OnOperationEnqueued(op *Operation)

	// OnOperationStarted is called when an operation's body begins
	// executing. It is not called for operations cancelled before
	// their start.
	OnOperationStarted(op *Operation)

	// OnOperationFinished is called exactly once when an operation
	// reaches its terminal state. elapsed is zero for operations that
	// never started.
	OnOperationFinished(op *Operation, elapsed time.Duration)

	// OnOperationCancelled is called when cancellation is requested
	// for an operation owned by the queue, before it finishes.
	OnOperationCancelled(op *Operation)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnOperationEnqueued(op *Operation)                        {}
func (NoopObserver) OnOperationStarted(op *Operation)                         {}
func (NoopObserver) OnOperationFinished(op *Operation, elapsed time.Duration) {}
func (NoopObserver) OnOperationCancelled(op *Operation)                       {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnOperationEnqueued(op *Operation) {
	for _, o := range c.observers {
		o.OnOperationEnqueued(op)
	}
}

func (c *CompositeObserver) OnOperationStarted(op *Operation) {
	for _, o := range c.observers {
		o.OnOperationStarted(op)
	}
}

func (c *CompositeObserver) OnOperationFinished(op *Operation, elapsed time.Duration) {
	for _, o := range c.observers {
		o.OnOperationFinished(op, elapsed)
	}
}

func (c *CompositeObserver) OnOperationCancelled(op *Operation) {
	for _, o := range c.observers {
		o.OnOperationCancelled(op)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs operation lifecycle
// events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnOperationEnqueued(op *Operation) {
	o.Logger.Info("operation_enqueued",
		slog.String("operation_id", op.ID()),
	)
}

func (o *LoggingObserver) OnOperationStarted(op *Operation) {
	o.Logger.Info("operation_started",
		slog.String("operation_id", op.ID()),
	)
}

func (o *LoggingObserver) OnOperationFinished(op *Operation, elapsed time.Duration) {
	o.Logger.Info("operation_finished",
		slog.String("operation_id", op.ID()),
		slog.Duration("elapsed", elapsed),
	)
}

func (o *LoggingObserver) OnOperationCancelled(op *Operation) {
	o.Logger.Warn("operation_cancelled",
		slog.String("operation_id", op.ID()),
	)
}

// BasicMetrics collects simple counters and aggregate execution time.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	enqueued     atomic.Int64
	started      atomic.Int64
	finished     atomic.Int64
	cancelled    atomic.Int64
	totalElapsed atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	Enqueued   int64
	Started    int64
	Finished   int64
	Cancelled  int64
	InFlight   int64
	AvgElapsed time.Duration
}

func (m *BasicMetrics) OnOperationEnqueued(op *Operation) {
	m.enqueued.Add(1)
}

func (m *BasicMetrics) OnOperationStarted(op *Operation) {
	m.started.Add(1)
}

func (m *BasicMetrics) OnOperationFinished(op *Operation, elapsed time.Duration) {
	m.finished.Add(1)
	m.totalElapsed.Add(elapsed.Nanoseconds())
}

func (m *BasicMetrics) OnOperationCancelled(op *Operation) {
	m.cancelled.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	enqueued := m.enqueued.Load()
	finished := m.finished.Load()
	totalNs := m.totalElapsed.Load()

	var avg time.Duration
	if finished > 0 {
		avg = time.Duration(totalNs / finished)
	}

	return BasicMetricsSnapshot{
		Enqueued:   enqueued,
		Started:    m.started.Load(),
		Finished:   finished,
		Cancelled:  m.cancelled.Load(),
		InFlight:   enqueued - finished,
		AvgElapsed: avg,
	}
}
