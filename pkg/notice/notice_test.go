package notice

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsOrder(t *testing.T) {
	r := &Recorder{}
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(context.Background(), Notice{Kind: KindValidationFailed, Variant: VariantDestructive})
	r.Notify(context.Background(), Notice{Kind: KindSolutionReady, Variant: VariantDefault})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, KindValidationFailed, all[0].Kind)
	assert.Equal(t, KindSolutionReady, all[1].Kind)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, KindSolutionReady, last.Kind)

	all[0].Title = "changed"
	assert.Empty(t, r.All()[0].Title, "All returns a copy")
}

func TestRecorderConcurrentNotify(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Notify(context.Background(), Notice{SessionID: fmt.Sprintf("s-%d", i)})
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.All(), 20)
}

func TestNotifierFunc(t *testing.T) {
	var got Notice
	n := NotifierFunc(func(_ context.Context, in Notice) { got = in })
	n.Notify(context.Background(), Notice{Title: "Ответ готов!"})
	assert.Equal(t, "Ответ готов!", got.Title)

	Discard{}.Notify(context.Background(), Notice{})
}
