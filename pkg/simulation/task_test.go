package simulation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestScheduleRunsAfterDelay(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls int32

	task := Schedule(clock, 1500*time.Millisecond, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	clock.Advance(time.Second)
	select {
	case <-task.Done():
		t.Fatal("task finished before its delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(500 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, task.Wait(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, task.Cancel(), "finished task must not be cancellable")
}

func TestScheduleReportsCallbackError(t *testing.T) {
	clock := NewManualClock(epoch)
	boom := errors.New("engine down")

	task := Schedule(clock, time.Second, func() error { return boom })
	clock.Advance(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.ErrorIs(t, task.Wait(ctx), boom)
}

func TestCancelBeforeFire(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls int32

	task := Schedule(clock, time.Second, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel(), "second cancel is a no-op")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.ErrorIs(t, task.Wait(ctx), ErrCancelled)

	clock.Advance(time.Hour)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestWaitHonoursContext(t *testing.T) {
	clock := NewManualClock(epoch)
	task := Schedule(clock, time.Minute, func() error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, task.Wait(ctx), context.DeadlineExceeded)
	task.Cancel()
}

func TestManualClockWaiters(t *testing.T) {
	clock := NewManualClock(epoch)
	ch := clock.After(time.Second)
	assert.Equal(t, 1, clock.Waiters())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, clock.Waiters())
	assert.Equal(t, epoch.Add(2*time.Second), <-ch)

	immediate := clock.After(0)
	assert.Equal(t, epoch.Add(2*time.Second), <-immediate)
}
