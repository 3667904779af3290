package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cancelable is implemented by sessions that may own an in-flight task.
type Cancelable interface {
	Cancel() bool
}

// SessionRepository keeps live sessions in memory. Entries expire after ttl
// without access; expired or deleted sessions have their pending task
// cancelled.
type SessionRepository[T Cancelable] struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository[T Cancelable](ttl, cleanupInterval time.Duration) *SessionRepository[T] {
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(_ string, value interface{}) {
		if session, ok := value.(T); ok {
			session.Cancel()
		}
	})
	return &SessionRepository[T]{
		cache: c,
	}
}

// Save stores the session under a private copy of id; callers may pass
// strings backed by reused request buffers.
func (r *SessionRepository[T]) Save(id string, session T) {
	r.cache.Set(strings.Clone(id), session, cache.DefaultExpiration)
}

// Get returns the session and extends its lifetime. An entry deleted
// concurrently is never brought back.
func (r *SessionRepository[T]) Get(id string) (T, bool) {
	var zero T
	x, found := r.cache.Get(id)
	if !found {
		return zero, false
	}
	if err := r.cache.Replace(strings.Clone(id), x, cache.DefaultExpiration); err != nil {
		return zero, false
	}
	return x.(T), true
}

func (r *SessionRepository[T]) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.cache.Get(id); !found {
		return false
	}
	r.cache.Delete(id)
	return true
}

func (r *SessionRepository[T]) Count() int {
	return r.cache.ItemCount()
}
