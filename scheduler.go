package strand

import (
	"github.com/perjohansson/strand/pkg/operation"
)

// Scheduler bundles a worker-pool Queue with an ExclusivityCoordinator
// so that call sites can submit operations under category keys with one
// call.
//
// Typical usage:
//
//	sched := strand.NewScheduler(strand.SchedulerConfig{MaxConcurrent: 4})
//
//	op, result := strand.NewFutureOperation(startLogin)
//	if err := sched.Submit(op, "account"); err != nil { ... }
//	result.Observe(func(c strand.Completion[Session]) { ... })
//
// A Scheduler is an explicitly constructed value, injected into every
// component that submits conflicting work; its lifecycle belongs to the
// process entry point, not to a lazily-initialized global.
type Scheduler struct {
	// Queue executes submitted operations.
	Queue *Queue

	// Coordinator serializes operations sharing a category.
	Coordinator *ExclusivityCoordinator
}

// SchedulerConfig describes how to construct a Scheduler.
type SchedulerConfig struct {
	// MaxConcurrent bounds how many operations execute at once.
	// Values below 1 default to the number of processors.
	MaxConcurrent int

	// Observer receives operation lifecycle callbacks. Nil means no
	// observation.
	Observer Observer
}

// NewScheduler constructs a Scheduler from the given config.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	return &Scheduler{
		Queue: operation.NewQueue(operation.QueueConfig{
			MaxConcurrent: cfg.MaxConcurrent,
			Observer:      cfg.Observer,
		}),
		Coordinator: operation.NewExclusivityCoordinator(),
	}
}

// Submit registers op under the given exclusivity categories and adds
// it to the queue. Operations sharing a category execute strictly in
// submission order; operations sharing none may run concurrently.
func (s *Scheduler) Submit(op *Operation, categories ...string) error {
	s.Coordinator.AddOperation(op, categories...)
	return s.Queue.Add(op)
}

// Wait blocks until every submitted operation has finished.
func (s *Scheduler) Wait() {
	s.Queue.Wait()
}

// SubmitFuture lifts producer into an operation, submits it under the
// given categories, and returns the mirror future of its completion.
func SubmitFuture[T any](s *Scheduler, producer func() *Future[T], categories ...string) (*Future[T], error) {
	op, f := operation.NewFutureOperation(producer)
	if err := s.Submit(op, categories...); err != nil {
		return nil, err
	}
	return f, nil
}
