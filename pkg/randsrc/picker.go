package randsrc

import (
	"math/rand"
	"sync"
)

// Picker chooses an index in [0, k).
type Picker interface {
	NextIndex(k int) int
}

// UniformPicker draws from math/rand's global source. Safe for
// concurrent use.
type UniformPicker struct{}

func NewUniformPicker() UniformPicker {
	return UniformPicker{}
}

func (UniformPicker) NextIndex(k int) int {
	if k <= 1 {
		return 0
	}
	return rand.Intn(k)
}

// SequencePicker replays a fixed list of indexes, wrapping around when it
// runs out. Each value is reduced modulo k.
type SequencePicker struct {
	mu      sync.Mutex
	indexes []int
	pos     int
}

func NewSequencePicker(indexes ...int) *SequencePicker {
	return &SequencePicker{indexes: indexes}
}

func (p *SequencePicker) NextIndex(k int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if k <= 1 || len(p.indexes) == 0 {
		return 0
	}
	v := p.indexes[p.pos%len(p.indexes)]
	p.pos++

	v %= k
	if v < 0 {
		v += k
	}
	return v
}
