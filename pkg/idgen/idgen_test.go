package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectConcurrently(t *testing.T, g Generator, workers, perWorker int) map[string]struct{} {
	t.Helper()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids = make(map[string]struct{}, workers*perWorker)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.NewID())
			}
			mu.Lock()
			for _, id := range local {
				ids[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return ids
}

func TestUUIDGeneratorUnique(t *testing.T) {
	g := NewUUIDGenerator()
	ids := collectConcurrently(t, g, 8, 500)
	assert.Len(t, ids, 4000)

	parsed, err := uuid.Parse(g.NewID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("sol")
	assert.Equal(t, "sol-1", g.NewID())
	assert.Equal(t, "sol-2", g.NewID())

	bare := NewSequenceGenerator("")
	assert.Equal(t, "1", bare.NewID())

	ids := collectConcurrently(t, NewSequenceGenerator("m"), 8, 500)
	assert.Len(t, ids, 4000)
}

func TestNew(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)
	assert.IsType(t, UUIDGenerator{}, g)

	g, err = New(StrategySequence)
	require.NoError(t, err)
	assert.IsType(t, &SequenceGenerator{}, g)

	_, err = New("clock")
	assert.Error(t, err)
}
