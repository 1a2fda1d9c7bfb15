package operation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State describes where an operation is in its lifecycle.
type State int32

const (
	// StateCreated: constructed, not yet handed to a queue.
	StateCreated State = iota
	// StatePending: owned by a queue, waiting for dependencies.
	StatePending
	// StateReady: dependencies satisfied, eligible to execute.
	StateReady
	// StateExecuting: body running (or its asynchronous work in flight).
	StateExecuting
	// StateFinished: terminal. Reached exactly once.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateExecuting:
		return "executing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyScheduled is returned when an operation is added to a
	// queue more than once.
	ErrAlreadyScheduled = errors.New("operation: already scheduled")

	// ErrFinished is returned when a finished operation is added to a
	// queue. Scheduling finished work is a programming error.
	ErrFinished = errors.New("operation: already finished")
)

// Func is an operation body. It receives the operation itself so bodies
// that hand work off asynchronously can call Finish once that work
// reaches its terminal state. A body that returns without finishing
// leaves the operation executing until someone calls Finish.
type Func func(op *Operation)

// Operation is a unit of schedulable work with an explicit lifecycle
// (Created → Pending → Ready → Executing → Finished) and optional
// dependency edges: every dependency must finish before the operation
// becomes ready. An operation may be cancelled at any point before it
// finishes; an operation cancelled before execution skips its body but
// still finishes, releasing its dependants.
type Operation struct {
	id   string
	body Func

	mu          sync.Mutex
	state       State
	cancelled   bool
	pendingDeps int
	dependants  []*Operation
	finishHooks []func()
	cancelHooks []func()
	queue       *Queue
	startedAt   time.Time
}

// New creates an operation around the given body. The body runs at most
// once, and not at all if the operation is cancelled before it starts.
func New(body Func) *Operation {
	return &Operation{
		id:   uuid.NewString(),
		body: body,
	}
}

// NewSync creates an operation whose body is a plain function: the
// operation finishes as soon as fn returns.
func NewSync(fn func()) *Operation {
	return New(func(op *Operation) {
		defer op.Finish()
		fn()
	})
}

// ID returns the operation's unique identifier.
func (o *Operation) ID() string { return o.id }

// State returns the current lifecycle state.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Cancelled reports whether cancellation has been requested.
func (o *Operation) Cancelled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancelled
}

// AddDependency records that o must not become ready before dep has
// finished. A dependency that already finished is satisfied immediately
// and adds no edge. Dependencies must be attached before o is added to
// a queue.
func (o *Operation) AddDependency(dep *Operation) {
	if dep == o {
		return
	}
	// Lock order: dependant before dependency. Finish notifies
	// dependants outside the dependency's lock, so this cannot cycle.
	o.mu.Lock()
	dep.mu.Lock()
	if dep.state != StateFinished {
		dep.dependants = append(dep.dependants, o)
		o.pendingDeps++
	}
	dep.mu.Unlock()
	o.mu.Unlock()
}

// OnFinish registers fn to run when the operation finishes. If the
// operation already finished, fn runs synchronously.
func (o *Operation) OnFinish(fn func()) {
	o.mu.Lock()
	if o.state == StateFinished {
		o.mu.Unlock()
		fn()
		return
	}
	o.finishHooks = append(o.finishHooks, fn)
	o.mu.Unlock()
}

// OnCancel registers fn to run when cancellation is requested. If
// cancellation was already requested, fn runs synchronously. Cancel
// hooks do not run for operations that finish without being cancelled.
func (o *Operation) OnCancel(fn func()) {
	o.mu.Lock()
	if o.cancelled {
		o.mu.Unlock()
		fn()
		return
	}
	if o.state == StateFinished {
		o.mu.Unlock()
		return
	}
	o.cancelHooks = append(o.cancelHooks, fn)
	o.mu.Unlock()
}

// Cancel requests best-effort cancellation. An operation that has not
// started yet will skip its body; an executing operation has its cancel
// hooks invoked and is expected to wind down and finish. Cancelling a
// finished operation is a no-op.
func (o *Operation) Cancel() {
	o.mu.Lock()
	if o.cancelled || o.state == StateFinished {
		o.mu.Unlock()
		return
	}
	o.cancelled = true
	hooks := o.cancelHooks
	o.cancelHooks = nil
	q := o.queue
	o.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if q != nil {
		q.operationCancelled(o)
	}
}

// Finish marks the operation finished, releases its dependants, and
// runs finish hooks. It is idempotent: only the first call has any
// effect.
func (o *Operation) Finish() {
	o.mu.Lock()
	if o.state == StateFinished {
		o.mu.Unlock()
		return
	}
	o.state = StateFinished
	hooks := o.finishHooks
	o.finishHooks = nil
	o.cancelHooks = nil
	dependants := o.dependants
	o.dependants = nil
	q := o.queue
	startedAt := o.startedAt
	o.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	for _, d := range dependants {
		d.dependencyFinished()
	}
	if q != nil {
		var elapsed time.Duration
		if !startedAt.IsZero() {
			elapsed = time.Since(startedAt)
		}
		q.operationFinished(o, elapsed)
	}
}

// attach binds the operation to a queue and reports whether it is
// immediately ready.
func (o *Operation) attach(q *Queue) (ready bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.state == StateFinished:
		return false, ErrFinished
	case o.queue != nil || o.state != StateCreated:
		return false, ErrAlreadyScheduled
	}
	o.queue = q
	o.state = StatePending
	if o.pendingDeps == 0 {
		o.state = StateReady
		return true, nil
	}
	return false, nil
}

func (o *Operation) dependencyFinished() {
	o.mu.Lock()
	o.pendingDeps--
	ready := o.pendingDeps == 0 && o.state == StatePending
	if ready {
		o.state = StateReady
	}
	q := o.queue
	o.mu.Unlock()

	if ready && q != nil {
		q.dispatch(o)
	}
}

// execute runs the body on a queue worker. Cancelled operations skip
// the body and finish directly so that dependants are still released.
func (o *Operation) execute() {
	o.mu.Lock()
	if o.state != StateReady {
		o.mu.Unlock()
		return
	}
	if o.cancelled {
		o.mu.Unlock()
		o.Finish()
		return
	}
	o.state = StateExecuting
	o.startedAt = time.Now()
	body := o.body
	q := o.queue
	o.mu.Unlock()

	if q != nil {
		q.operationStarted(o)
	}
	if body == nil {
		o.Finish()
		return
	}
	body(o)
}
