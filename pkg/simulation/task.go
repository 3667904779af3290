package simulation

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCancelled = errors.New("simulation: task cancelled")

type taskState int

const (
	stateScheduled taskState = iota
	stateRunning
	stateFinished
	stateCancelled
)

// Task is a one-shot deferred operation. It either runs its callback once
// the delay elapses or is cancelled before that; never both.
type Task struct {
	mu     sync.Mutex
	state  taskState
	err    error
	done   chan struct{}
	cancel chan struct{}
}

// Schedule arms a timer on clock and runs fn when it fires. The timer is
// registered before Schedule returns, so a ManualClock advanced right after
// the call always sees it.
func Schedule(clock Clock, delay time.Duration, fn func() error) *Task {
	t := &Task{
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}
	fire := clock.After(delay)

	go func() {
		defer close(t.done)

		select {
		case <-fire:
		case <-t.cancel:
			return
		}

		t.mu.Lock()
		if t.state != stateScheduled {
			t.mu.Unlock()
			return
		}
		t.state = stateRunning
		t.mu.Unlock()

		err := fn()

		t.mu.Lock()
		t.state = stateFinished
		t.err = err
		t.mu.Unlock()
	}()

	return t
}

// Cancel stops the task if its callback has not started yet. It reports
// whether the cancellation took effect.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	if t.state != stateScheduled {
		t.mu.Unlock()
		return false
	}
	t.state = stateCancelled
	t.err = ErrCancelled
	t.mu.Unlock()

	close(t.cancel)
	return true
}

// Done is closed once the task finished or was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the callback error, ErrCancelled, or nil.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks until the task completes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
