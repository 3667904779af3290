package service

import (
	"context"
	"testing"
	"time"

	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/internal/repository/memory"
	"problem-solver-be/pkg/idgen"
	"problem-solver-be/pkg/notice"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/solver"
	"problem-solver-be/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newSolverService(opts ...solver.Option) ISolverService {
	repo := memory.NewSessionRepository[*solver.Session](time.Hour, time.Minute)
	base := []solver.Option{solver.WithLatency(0), solver.WithNotifier(notice.Discard{})}
	return NewSolverService(repo, idgen.NewSequenceGenerator("solver"), time.Second, logger.NewNopLogger(), append(base, opts...)...)
}

func TestSolverServiceSolveAndWait(t *testing.T) {
	svc := newSolverService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "solver-1", created.Id)
	assert.Equal(t, "math", created.Subject.Value)

	res, err := svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("2x + 3 = 13"), Wait: true})
	require.NoError(t, err)
	assert.False(t, res.Pending)
	require.NotNil(t, res.Current)
	assert.Equal(t, "x = 5", res.Current.Answer)
	assert.Len(t, res.Current.Steps, 5)
	assert.Equal(t, "Математика", res.Current.Subject)
	assert.Equal(t, 1, res.HistoryCount)

	history, err := svc.GetHistory(ctx, created.Id)
	require.NoError(t, err)
	assert.Len(t, history.Solutions, 1)
}

func TestSolverServiceRecentIsCapped(t *testing.T) {
	svc := newSolverService()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	var res *dto.SolverSessionResponse
	for i := 0; i < 7; i++ {
		res, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("q"), Wait: true})
		require.NoError(t, err)
	}
	assert.Equal(t, 7, res.HistoryCount)
	assert.Len(t, res.Recent, 5)
	assert.Equal(t, res.Current.Id, res.Recent[0].Id)
}

func TestSolverServiceErrors(t *testing.T) {
	svc := newSolverService()
	ctx := context.Background()

	_, err := svc.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, "nope"), ErrSessionNotFound)

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.SetSubject(ctx, created.Id, &dto.SetSubjectRequest{Subject: "astrology"})
	assert.True(t, validation.IsValidation(err))

	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("   ")})
	assert.ErrorIs(t, err, solver.ErrEmptyQuestion)

	require.NoError(t, svc.DeleteSession(ctx, created.Id))
	assert.False(t, svc.Exists(created.Id))
}

func TestSolverServicePendingAndCancel(t *testing.T) {
	clock := simulation.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := newSolverService(solver.WithClock(clock), solver.WithLatency(time.Second))
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	res, err := svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("2x + 3 = 13")})
	require.NoError(t, err)
	assert.True(t, res.Pending)

	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{})
	assert.ErrorIs(t, err, solver.ErrPending)

	cancelled, err := svc.Cancel(ctx, created.Id)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)

	got, err := svc.GetSession(ctx, created.Id)
	require.NoError(t, err)
	assert.False(t, got.Pending)
	assert.Zero(t, got.HistoryCount)
}

func TestSolverServiceSelectSolution(t *testing.T) {
	svc := newSolverService()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	first, err := svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("first"), Wait: true})
	require.NoError(t, err)
	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("second"), Wait: true})
	require.NoError(t, err)

	res, err := svc.SelectSolution(ctx, created.Id, &dto.SelectSolutionRequest{SolutionId: first.Current.Id})
	require.NoError(t, err)
	assert.True(t, res.Selected)
	assert.Equal(t, "first", res.Session.Current.Question)

	res, err = svc.SelectSolution(ctx, created.Id, &dto.SelectSolutionRequest{SolutionId: "unknown"})
	require.NoError(t, err)
	assert.False(t, res.Selected)
	assert.Equal(t, "first", res.Session.Current.Question)
}

func TestSolverServiceRejectedSolveKeepsState(t *testing.T) {
	clock := simulation.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := newSolverService(solver.WithClock(clock), solver.WithLatency(time.Second))
	ctx := context.Background()

	created, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.SetQuestion(ctx, created.Id, &dto.SetQuestionRequest{Question: "kept"})
	require.NoError(t, err)

	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Question: strPtr("  ")})
	assert.ErrorIs(t, err, solver.ErrEmptyQuestion)
	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Subject: strPtr("astrology"), Question: strPtr("other")})
	assert.True(t, validation.IsValidation(err))

	got, err := svc.GetSession(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Question)

	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{})
	require.NoError(t, err)

	_, err = svc.Solve(ctx, created.Id, &dto.SolveRequest{Subject: strPtr("physics"), Question: strPtr("other")})
	assert.ErrorIs(t, err, solver.ErrPending)

	got, err = svc.GetSession(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Question)
	assert.Equal(t, "math", got.Subject.Value)
}
