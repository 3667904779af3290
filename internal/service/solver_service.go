package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/mapper"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/internal/repository/memory"
	"problem-solver-be/pkg/idgen"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/solver"
)

var ErrSessionNotFound = errors.New("session not found")

type ISolverService interface {
	Subjects(ctx context.Context) []dto.SubjectResponse
	CreateSession(ctx context.Context) (*dto.SolverSessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SolverSessionResponse, error)
	GetHistory(ctx context.Context, id string) (*dto.SolverHistoryResponse, error)
	SetSubject(ctx context.Context, id string, req *dto.SetSubjectRequest) (*dto.SolverSessionResponse, error)
	SetQuestion(ctx context.Context, id string, req *dto.SetQuestionRequest) (*dto.SolverSessionResponse, error)
	Solve(ctx context.Context, id string, req *dto.SolveRequest) (*dto.SolverSessionResponse, error)
	SelectSolution(ctx context.Context, id string, req *dto.SelectSolutionRequest) (*dto.SelectSolutionResponse, error)
	Cancel(ctx context.Context, id string) (*dto.CancelResponse, error)
	DeleteSession(ctx context.Context, id string) error
	Exists(id string) bool
}

type solverService struct {
	repo        *memory.SessionRepository[*solver.Session]
	sessionIDs  idgen.Generator
	waitTimeout time.Duration
	options     []solver.Option
	mapper      *mapper.SolverMapper
	logger      logger.ILogger
}

// NewSolverService manages solver sessions. options are applied to every
// session it creates.
func NewSolverService(
	repo *memory.SessionRepository[*solver.Session],
	sessionIDs idgen.Generator,
	waitTimeout time.Duration,
	log logger.ILogger,
	options ...solver.Option,
) ISolverService {
	return &solverService{
		repo:        repo,
		sessionIDs:  sessionIDs,
		waitTimeout: waitTimeout,
		options:     options,
		mapper:      mapper.NewSolverMapper(),
		logger:      log,
	}
}

func (s *solverService) find(id string) (*solver.Session, error) {
	sess, ok := s.repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("solver session %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

func (s *solverService) Subjects(ctx context.Context) []dto.SubjectResponse {
	return s.mapper.SubjectsToResponse(solver.Subjects())
}

func (s *solverService) CreateSession(ctx context.Context) (*dto.SolverSessionResponse, error) {
	id := s.sessionIDs.NewID()
	sess := solver.NewSession(id, s.options...)
	s.repo.Save(id, sess)

	s.logger.Info("SolverService", "Session created", map[string]interface{}{"session_id": id})
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *solverService) GetSession(ctx context.Context, id string) (*dto.SolverSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *solverService) GetHistory(ctx context.Context, id string) (*dto.SolverHistoryResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return &dto.SolverHistoryResponse{
		SessionId: id,
		Solutions: s.mapper.SolutionsToResponse(sess.Snapshot().History),
	}, nil
}

func (s *solverService) SetSubject(ctx context.Context, id string, req *dto.SetSubjectRequest) (*dto.SolverSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := sess.SetSubject(req.Subject); err != nil {
		return nil, err
	}
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *solverService) SetQuestion(ctx context.Context, id string, req *dto.SetQuestionRequest) (*dto.SolverSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	sess.SetQuestion(req.Question)
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

// Solve starts a solve with the optional subject and question from req,
// which are kept only when the solve is accepted. With req.Wait it blocks until the solution is recorded or the wait
// timeout passes; in the latter case the pending snapshot is returned.
func (s *solverService) Solve(ctx context.Context, id string, req *dto.SolveRequest) (*dto.SolverSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	task, err := sess.SolveWith(ctx, req.Subject, req.Question)
	if err != nil {
		return nil, err
	}

	if req.Wait {
		if err := waitTask(ctx, task, s.waitTimeout); err != nil {
			return nil, err
		}
	}
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *solverService) SelectSolution(ctx context.Context, id string, req *dto.SelectSolutionRequest) (*dto.SelectSolutionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	selected := sess.SelectFromHistory(req.SolutionId)
	return &dto.SelectSolutionResponse{
		Selected: selected,
		Session:  s.mapper.SnapshotToResponse(sess.Snapshot()),
	}, nil
}

func (s *solverService) Cancel(ctx context.Context, id string) (*dto.CancelResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	cancelled := sess.Cancel()
	return &dto.CancelResponse{
		Cancelled: cancelled,
		Session:   s.mapper.SnapshotToResponse(sess.Snapshot()),
	}, nil
}

func (s *solverService) DeleteSession(ctx context.Context, id string) error {
	if !s.repo.Delete(id) {
		return fmt.Errorf("solver session %s: %w", id, ErrSessionNotFound)
	}
	s.logger.Info("SolverService", "Session deleted", map[string]interface{}{"session_id": id})
	return nil
}

func (s *solverService) Exists(id string) bool {
	_, ok := s.repo.Get(id)
	return ok
}

// waitTask blocks on task for at most timeout. Running out of time or a
// cancelled task is not an error: the caller reports whatever state the
// session is in.
func waitTask(ctx context.Context, task *simulation.Task, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := task.Wait(waitCtx)
	switch {
	case err == nil,
		errors.Is(err, simulation.ErrCancelled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}
