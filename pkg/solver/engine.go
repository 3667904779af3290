package solver

import (
	"context"
	"fmt"

	"problem-solver-be/internal/constant"
)

const EngineCanned = "canned"

type Problem struct {
	Subject  Subject
	Question string
}

type Answer struct {
	Answer       string
	Steps        []string
	Verification string
}

// Engine turns a problem into an answer. Implementations must be safe for
// concurrent use; a session calls Solve without holding its lock.
type Engine interface {
	Solve(ctx context.Context, p Problem) (Answer, error)
}

type EngineFunc func(ctx context.Context, p Problem) (Answer, error)

func (f EngineFunc) Solve(ctx context.Context, p Problem) (Answer, error) { return f(ctx, p) }

// CannedEngine is a stub: it returns the same linear equation walkthrough
// for every problem and ignores both subject and question.
type CannedEngine struct{}

func NewCannedEngine() CannedEngine {
	return CannedEngine{}
}

func (CannedEngine) Solve(ctx context.Context, _ Problem) (Answer, error) {
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	steps := make([]string, len(constant.CannedSolutionSteps))
	copy(steps, constant.CannedSolutionSteps)

	return Answer{
		Answer:       constant.CannedSolutionAnswer,
		Steps:        steps,
		Verification: constant.CannedSolutionVerification,
	}, nil
}

// NewEngine builds an engine by name.
func NewEngine(kind string) (Engine, error) {
	switch kind {
	case "", EngineCanned:
		return NewCannedEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported solver engine: %s", kind)
	}
}
