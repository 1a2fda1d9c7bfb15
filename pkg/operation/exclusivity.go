package operation

import "sync"

// ExclusivityCoordinator serializes logically-conflicting operations
// while leaving unrelated operations free to run concurrently.
//
// Conflicts are expressed as opaque category keys. For every key passed
// to AddOperation, the new operation is chained behind the operation
// most recently added under that key, yielding strict FIFO execution
// per category regardless of queue parallelism. An operation entered
// under several categories depends on the tail of every one of them,
// modelling "conflicts with anything in A or B".
//
// The coordinator holds only the per-category tails, so its state never
// grows past the number of categories with in-flight work. Every add is
// paired with a release when the operation finishes; RemoveOperation
// remains public for callers that manage the pairing themselves.
//
// Coordinators are plain values wired in explicitly wherever conflicting
// work is submitted; there is deliberately no process-wide instance.
type ExclusivityCoordinator struct {
	mu    sync.Mutex
	tails map[string]*Operation
}

// NewExclusivityCoordinator returns an empty coordinator.
func NewExclusivityCoordinator() *ExclusivityCoordinator {
	return &ExclusivityCoordinator{
		tails: make(map[string]*Operation),
	}
}

// AddOperation chains op behind the current tail of every category and
// records op as the new tail. It must be called before op is added to a
// queue, while dependency edges can still be attached. Passing no
// categories is a no-op.
func (c *ExclusivityCoordinator) AddOperation(op *Operation, categories ...string) {
	if len(categories) == 0 {
		return
	}

	c.mu.Lock()
	for _, key := range categories {
		if tail, ok := c.tails[key]; ok {
			op.AddDependency(tail)
		}
		c.tails[key] = op
	}
	c.mu.Unlock()

	keys := append([]string(nil), categories...)
	op.OnFinish(func() {
		c.RemoveOperation(op, keys...)
	})
}

// RemoveOperation clears tail entries still pointing at op. Entries
// already superseded by a later operation are left untouched. Skipping
// removal does not break ordering (a finished tail satisfies its
// dependants immediately) but would retain finished operations for as
// long as their category stays quiet.
func (c *ExclusivityCoordinator) RemoveOperation(op *Operation, categories ...string) {
	c.mu.Lock()
	for _, key := range categories {
		if c.tails[key] == op {
			delete(c.tails, key)
		}
	}
	c.mu.Unlock()
}

// ActiveCategories returns the number of categories that currently have
// an unfinished (or not yet removed) tail. Intended for diagnostics.
func (c *ExclusivityCoordinator) ActiveCategories() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tails)
}
