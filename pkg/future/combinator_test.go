package future

import (
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMap_TransformsSuccess(t *testing.T) {
	f := Map(Resolved(21), func(v int) int { return v * 2 })

	var c Completion[int]
	f.Observe(func(got Completion[int]) { c = got })

	require.True(t, c.Succeeded())
	require.Equal(t, 42, c.Value())
}

func TestMap_PassesFailureThroughUnchanged(t *testing.T) {
	errBoom := errors.New("boom")
	called := false
	f := Map(Failed[int](errBoom), func(v int) string {
		called = true
		return strconv.Itoa(v)
	})

	var c Completion[string]
	f.Observe(func(got Completion[string]) { c = got })

	require.False(t, called, "map fn must not run for failures")
	require.ErrorIs(t, c.Err(), errBoom)
}

func TestMap_PassesCancellationThrough(t *testing.T) {
	called := false
	f := Map(CancelledFuture[int](), func(v int) int {
		called = true
		return v
	})

	var c Completion[int]
	f.Observe(func(got Completion[int]) { c = got })

	require.False(t, called)
	require.True(t, c.Cancelled())
}

func TestMapError_TransformsFailureOnly(t *testing.T) {
	errInner := errors.New("inner")
	errOuter := errors.New("outer")

	f := Failed[int](errInner).MapError(func(err error) error {
		return errOuter
	})
	var c Completion[int]
	f.Observe(func(got Completion[int]) { c = got })
	require.ErrorIs(t, c.Err(), errOuter)

	g := Resolved(1).MapError(func(err error) error {
		t.Fatal("mapError fn must not run for successes")
		return err
	})
	var gc Completion[int]
	g.Observe(func(got Completion[int]) { gc = got })
	require.True(t, gc.Succeeded())
}

func TestThen_ChainsOnSuccess(t *testing.T) {
	f := Then(Resolved(2), func(v int) *Future[string] {
		return Resolved(strconv.Itoa(v * 10))
	})

	var c Completion[string]
	f.Observe(func(got Completion[string]) { c = got })

	require.True(t, c.Succeeded())
	require.Equal(t, "20", c.Value())
}

func TestThen_ShortCircuitsOnFailure(t *testing.T) {
	errBoom := errors.New("boom")
	invoked := false
	f := Then(Failed[int](errBoom), func(v int) *Future[int] {
		invoked = true
		return Resolved(v)
	})

	var c Completion[int]
	f.Observe(func(got Completion[int]) { c = got })

	require.False(t, invoked, "continuation must not run after failure")
	require.ErrorIs(t, c.Err(), errBoom)
}

func TestThen_CancelBeforeContinuationCancelsUpstream(t *testing.T) {
	var upstream *Resolver[int]
	first := New(func(r *Resolver[int]) { upstream = r })

	var invoked atomic.Bool
	combined := Then(first, func(v int) *Future[int] {
		invoked.Store(true)
		return Resolved(v)
	})

	got := make(chan Completion[int], 1)
	token := combined.Observe(func(c Completion[int]) { got <- c })
	token.Cancel()

	select {
	case c := <-got:
		require.True(t, c.Cancelled())
	case <-time.After(time.Second):
		t.Fatal("combined future never resolved after cancel")
	}
	require.False(t, invoked.Load(), "continuation must not run after cancellation")

	// A late upstream resolution is silently dropped downstream.
	upstream.Resolve(FinishedValue(1))
	require.False(t, invoked.Load())
}

func TestThen_CancelAfterContinuationCancelsProducedFuture(t *testing.T) {
	var second *Resolver[int]
	started := make(chan struct{})

	combined := Then(Resolved(1), func(v int) *Future[int] {
		return New(func(r *Resolver[int]) {
			second = r
			close(started)
		})
	})

	got := make(chan Completion[int], 1)
	token := combined.Observe(func(c Completion[int]) { got <- c })

	<-started
	token.Cancel()

	select {
	case c := <-got:
		require.True(t, c.Cancelled(), "expected cancellation of the produced future, got %v", c)
	case <-time.After(time.Second):
		t.Fatal("combined future never resolved after cancel")
	}
	_ = second
}

func TestSchedule_DefersProducerUntilExecutorRuns(t *testing.T) {
	exec := &manualExecutor{}
	invoked := false

	f := Schedule(exec, func() *Future[int] {
		invoked = true
		return Resolved(11)
	})

	require.False(t, invoked, "producer must not run before the executor does")

	var c Completion[int]
	f.Observe(func(got Completion[int]) { c = got })

	exec.runAll()

	require.True(t, invoked)
	require.True(t, c.Succeeded())
	require.Equal(t, 11, c.Value())
}

func TestSchedule_CancelBeforeStartSkipsProducer(t *testing.T) {
	exec := &manualExecutor{}
	invoked := false

	f := Schedule(exec, func() *Future[int] {
		invoked = true
		return Resolved(1)
	})

	var c Completion[int]
	token := f.Observe(func(got Completion[int]) { c = got })
	token.Cancel()

	exec.runAll()

	require.False(t, invoked, "producer must not run after cancellation")
	require.True(t, c.Cancelled())
}

func TestReceiveOn_RedispatchesCompletion(t *testing.T) {
	exec := &manualExecutor{}

	f := Resolved(5).ReceiveOn(exec)

	delivered := false
	f.Observe(func(c Completion[int]) {
		delivered = true
		require.Equal(t, 5, c.Value())
	})

	require.False(t, delivered, "observer must wait for the executor")
	exec.runAll()
	require.True(t, delivered)
}

func TestCombinatorChain_SingleTerminalEvent(t *testing.T) {
	var r *Resolver[int]
	root := New(func(res *Resolver[int]) { r = res })

	var events atomic.Int32
	chain := Map(Then(Map(root, func(v int) int { return v + 1 }), func(v int) *Future[int] {
		return Resolved(v * 2)
	}), func(v int) int { return v - 1 })

	chain.Observe(func(Completion[int]) { events.Add(1) })

	r.Resolve(FinishedValue(10))
	r.Resolve(FinishedValue(99))

	require.Equal(t, int32(1), events.Load())

	var c Completion[int]
	chain.Observe(func(got Completion[int]) { c = got })
	require.Equal(t, 21, c.Value())
}

// manualExecutor queues submitted functions until runAll is called.
type manualExecutor struct {
	fns []func()
}

func (e *manualExecutor) Execute(fn func()) {
	e.fns = append(e.fns, fn)
}

func (e *manualExecutor) runAll() {
	fns := e.fns
	e.fns = nil
	for _, fn := range fns {
		fn()
	}
}
