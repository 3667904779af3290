package memory

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	cancelled atomic.Int32
}

func (f *fakeSession) Cancel() bool {
	f.cancelled.Add(1)
	return true
}

func TestSaveGetDelete(t *testing.T) {
	repo := NewSessionRepository[*fakeSession](time.Hour, time.Minute)
	s := &fakeSession{}

	repo.Save("a", s)
	got, ok := repo.Get("a")
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, repo.Count())

	assert.True(t, repo.Delete("a"))
	assert.False(t, repo.Delete("a"))
	assert.Equal(t, int32(1), s.cancelled.Load(), "delete cancels pending work")

	_, ok = repo.Get("a")
	assert.False(t, ok)
}

func TestExpiredSessionsAreCancelled(t *testing.T) {
	repo := NewSessionRepository[*fakeSession](20*time.Millisecond, 5*time.Millisecond)
	s := &fakeSession{}
	repo.Save("a", s)

	assert.Eventually(t, func() bool {
		return s.cancelled.Load() == 1
	}, time.Second, 5*time.Millisecond)

	_, ok := repo.Get("a")
	assert.False(t, ok)
}

func TestKeysSurviveReusedBuffers(t *testing.T) {
	repo := NewSessionRepository[*fakeSession](time.Hour, time.Minute)
	s := &fakeSession{}

	buf := []byte("sess-1")
	repo.Save(unsafe.String(&buf[0], len(buf)), s)

	_, ok := repo.Get(unsafe.String(&buf[0], len(buf)))
	require.True(t, ok)

	copy(buf, "zzzz-9")

	got, ok := repo.Get("sess-1")
	require.True(t, ok, "stored key must not alias the caller's bytes")
	assert.Same(t, s, got)
	_, ok = repo.Get("zzzz-9")
	assert.False(t, ok)
}

func TestGetDoesNotRestoreDeletedSession(t *testing.T) {
	repo := NewSessionRepository[*fakeSession](time.Hour, time.Minute)
	s := &fakeSession{}
	repo.Save("a", s)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Get("a")
		}()
	}
	assert.True(t, repo.Delete("a"))
	wg.Wait()

	_, ok := repo.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.Count())
	assert.Equal(t, int32(1), s.cancelled.Load())
}
