package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	StrategyUUID     = "uuid"
	StrategySequence = "sequence"
)

// Generator hands out identifiers that are unique for the life of the
// process, including calls made within the same clock tick.
type Generator interface {
	NewID() string
}

// UUIDGenerator issues UUIDv7 values: time ordered, random in the low bits.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequenceGenerator issues prefix-1, prefix-2, ... from an atomic counter.
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	n := g.next.Add(1)
	if g.prefix == "" {
		return strconv.FormatUint(n, 10)
	}
	return g.prefix + "-" + strconv.FormatUint(n, 10)
}

// New builds a generator for the configured strategy.
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", StrategyUUID:
		return NewUUIDGenerator(), nil
	case StrategySequence:
		return NewSequenceGenerator(""), nil
	default:
		return nil, fmt.Errorf("unsupported id strategy: %s", strategy)
	}
}
