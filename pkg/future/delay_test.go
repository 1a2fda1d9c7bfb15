package future

import (
	"errors"
	"testing"
	"time"
)

func TestDelay_ForwardsSuccessNoEarlierThanDuration(t *testing.T) {
	t.Parallel()

	const d = 100 * time.Millisecond
	start := time.Now()

	f := Resolved("v").Delay(d, DeadlineTimer)

	got := make(chan Completion[string], 1)
	f.Observe(func(c Completion[string]) { got <- c })

	select {
	case c := <-got:
		elapsed := time.Since(start)
		if elapsed < d {
			t.Fatalf("delivered after %v, before the %v delay", elapsed, d)
		}
		if !c.Succeeded() || c.Value() != "v" {
			t.Fatalf("expected success(v), got %v", c)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("delayed future never resolved")
	}
}

func TestDelay_CancelBeforeFireNeverInvokesDownstream(t *testing.T) {
	t.Parallel()

	f := Resolved(1).Delay(200*time.Millisecond, DeadlineTimer)

	got := make(chan Completion[int], 1)
	token := f.Observe(func(c Completion[int]) { got <- c })

	time.Sleep(20 * time.Millisecond)
	token.Cancel()

	select {
	case c := <-got:
		if !c.Cancelled() {
			t.Fatalf("expected cancelled, got %v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled delay never resolved")
	}

	// Wait past the original deadline: no second event may arrive.
	select {
	case c := <-got:
		t.Fatalf("downstream invoked again after cancellation: %v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDelay_FailurePassesThroughWithoutWaiting(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	start := time.Now()

	f := Failed[int](errBoom).Delay(time.Hour, DeadlineTimer)

	got := make(chan Completion[int], 1)
	f.Observe(func(c Completion[int]) { got <- c })

	select {
	case c := <-got:
		if !errors.Is(c.Err(), errBoom) {
			t.Fatalf("expected boom, got %v", c)
		}
		if time.Since(start) > time.Second {
			t.Fatal("failure waited on the timer")
		}
	case <-time.After(time.Second):
		t.Fatal("failure never passed through")
	}
}

func TestDelay_WallClockTimerFires(t *testing.T) {
	t.Parallel()

	f := Resolved(1).Delay(50*time.Millisecond, WallClockTimer)

	got := make(chan Completion[int], 1)
	f.Observe(func(c Completion[int]) { got <- c })

	select {
	case c := <-got:
		if !c.Succeeded() {
			t.Fatalf("expected success, got %v", c)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("wall-clock delay never fired")
	}
}

func TestDelay_CancelBeforeUpstreamResolutionForwardsUpstream(t *testing.T) {
	var r *Resolver[int]
	upstream := New(func(res *Resolver[int]) { r = res })

	f := upstream.Delay(time.Hour, DeadlineTimer)

	got := make(chan Completion[int], 1)
	token := f.Observe(func(c Completion[int]) { got <- c })
	token.Cancel()

	select {
	case c := <-got:
		if !c.Cancelled() {
			t.Fatalf("expected cancelled, got %v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("never resolved")
	}
	_ = r
}
