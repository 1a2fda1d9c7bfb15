package operation

import (
	"runtime"
	"sync"
	"time"
)

// QueueConfig describes how to construct a Queue.
type QueueConfig struct {
	// MaxConcurrent bounds how many operation bodies run at once.
	// Values below 1 default to runtime.GOMAXPROCS(0).
	MaxConcurrent int

	// Observer receives lifecycle callbacks. Nil means NoopObserver.
	Observer Observer
}

// Queue executes operations on a bounded pool of worker goroutines.
// Operations become eligible once all their dependencies have finished;
// eligible operations sharing no dependency edge run concurrently,
// subject to MaxConcurrent.
//
// A queue imposes no ordering of its own. FIFO-per-category ordering is
// layered on top by ExclusivityCoordinator, which expresses conflicts
// as dependency edges before operations are added here.
type Queue struct {
	observer Observer
	slots    chan struct{}
	wg       sync.WaitGroup
}

// NewQueue constructs a queue from the given config.
func NewQueue(cfg QueueConfig) *Queue {
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = runtime.GOMAXPROCS(0)
	}
	obs := cfg.Observer
	if obs == nil {
		obs = NoopObserver{}
	}
	return &Queue{
		observer: obs,
		slots:    make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Add hands the operation to the queue. It returns ErrFinished for
// operations that already finished and ErrAlreadyScheduled for
// operations already owned by a queue; both are programming errors at
// the call site.
func (q *Queue) Add(op *Operation) error {
	ready, err := op.attach(q)
	if err != nil {
		return err
	}
	q.wg.Add(1)
	q.observer.OnOperationEnqueued(op)
	if ready {
		q.dispatch(op)
	}
	return nil
}

// Wait blocks until every operation added so far has finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// dispatch schedules a ready operation onto a worker slot. The slot is
// held while the body runs; bodies that finish asynchronously release
// the slot on return and their operation completes later.
func (q *Queue) dispatch(op *Operation) {
	go func() {
		q.slots <- struct{}{}
		defer func() { <-q.slots }()
		op.execute()
	}()
}

func (q *Queue) operationStarted(op *Operation) {
	q.observer.OnOperationStarted(op)
}

func (q *Queue) operationFinished(op *Operation, elapsed time.Duration) {
	q.observer.OnOperationFinished(op, elapsed)
	q.wg.Done()
}

func (q *Queue) operationCancelled(op *Operation) {
	q.observer.OnOperationCancelled(op)
}
