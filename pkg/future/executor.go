package future

import "sync"

// Executor is an execution context onto which work can be dispatched.
// Futures themselves carry no thread affinity; ReceiveOn and Schedule are
// the only mechanisms that pin work to a specific context.
//
// Implementations must not drop submitted functions.
type Executor interface {
	Execute(fn func())
}

// GoroutineExecutor runs every submitted function on its own goroutine.
type GoroutineExecutor struct{}

func (GoroutineExecutor) Execute(fn func()) { go fn() }

// ImmediateExecutor runs submitted functions synchronously on the
// calling goroutine. Mostly useful in tests.
type ImmediateExecutor struct{}

func (ImmediateExecutor) Execute(fn func()) { fn() }

// SerialExecutor runs submitted functions one at a time, in submission
// order, on a background goroutine. It needs no explicit shutdown: the
// draining goroutine exits whenever the queue runs empty.
type SerialExecutor struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

// NewSerialExecutor returns a ready-to-use serial executor.
func NewSerialExecutor() *SerialExecutor {
	return &SerialExecutor{}
}

func (e *SerialExecutor) Execute(fn func()) {
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	if !e.running {
		e.running = true
		go e.drain()
	}
	e.mu.Unlock()
}

func (e *SerialExecutor) drain() {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.running = false
			e.mu.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		fn()
	}
}
