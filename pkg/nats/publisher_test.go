package nats

import (
	"testing"

	"problem-solver-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.solution_ready", Subject(events.BaseEvent{Type: "solution_ready"}))
}
