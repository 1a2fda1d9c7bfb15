package strand

import (
	"github.com/perjohansson/strand/pkg/future"
	"github.com/perjohansson/strand/pkg/operation"
)

// Re-export key types so users don't need to dig into pkg/future and
// pkg/operation.

type (
	Future[T any]     = future.Future[T]
	Resolver[T any]   = future.Resolver[T]
	Completion[T any] = future.Completion[T]
	Cancellation      = future.Cancellation
	Executor          = future.Executor
	GoroutineExecutor = future.GoroutineExecutor
	ImmediateExecutor = future.ImmediateExecutor
	SerialExecutor    = future.SerialExecutor
	TimerKind         = future.TimerKind
	WaitPolicy        = future.WaitPolicy
	RetryStrategy     = future.RetryStrategy

	Operation              = operation.Operation
	OperationState         = operation.State
	Queue                  = operation.Queue
	QueueConfig            = operation.QueueConfig
	ExclusivityCoordinator = operation.ExclusivityCoordinator
	Observer               = operation.Observer
	NoopObserver           = operation.NoopObserver
	LoggingObserver        = operation.LoggingObserver
	BasicMetrics           = operation.BasicMetrics
	BasicMetricsSnapshot   = operation.BasicMetricsSnapshot
	Event                  = operation.Event
	EventType              = operation.EventType
	HistoryReader          = operation.HistoryReader
)

// Re-export timer kinds and operation states for convenience.

const (
	DeadlineTimer  = future.DeadlineTimer
	WallClockTimer = future.WallClockTimer

	StateCreated   = operation.StateCreated
	StatePending   = operation.StatePending
	StateReady     = operation.StateReady
	StateExecuting = operation.StateExecuting
	StateFinished  = operation.StateFinished
)

// Re-export common constructors and helpers.

var (
	NewSerialExecutor         = future.NewSerialExecutor
	ImmediateWait             = future.ImmediateWait
	ConstantWait              = future.ConstantWait
	NewOperation              = operation.New
	NewSyncOperation          = operation.NewSync
	NewQueue                  = operation.NewQueue
	NewExclusivityCoordinator = operation.NewExclusivityCoordinator
	NewCompositeObserver      = operation.NewCompositeObserver
	NewLoggingObserver        = operation.NewLoggingObserver
)
