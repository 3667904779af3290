package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformPickerStaysInRange(t *testing.T) {
	p := NewUniformPicker()
	seen := make(map[int]bool)

	for i := 0; i < 500; i++ {
		idx := p.NextIndex(3)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 3)
		seen[idx] = true
	}

	assert.Len(t, seen, 3, "500 draws over 3 values should hit each one")
	assert.Equal(t, 0, p.NextIndex(1))
	assert.Equal(t, 0, p.NextIndex(0))
}

func TestSequencePicker(t *testing.T) {
	p := NewSequencePicker(2, 0, 4, -1)

	assert.Equal(t, 2, p.NextIndex(3))
	assert.Equal(t, 0, p.NextIndex(3))
	assert.Equal(t, 1, p.NextIndex(3))
	assert.Equal(t, 2, p.NextIndex(3))
	assert.Equal(t, 2, p.NextIndex(3), "wraps to the first value")

	assert.Equal(t, 0, NewSequencePicker().NextIndex(3))
}
