package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"problem-solver-be/internal/constant"
	"problem-solver-be/internal/entity"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/idgen"
	"problem-solver-be/pkg/notice"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/validation"
)

const DefaultLatency = 1500 * time.Millisecond

var (
	ErrPending       = errors.New("solver: a solve is already in progress")
	ErrEmptyQuestion = validation.New("question", constant.SolverValidationDescription)
)

type Option func(*Session)

func WithClock(c simulation.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithLatency(d time.Duration) Option {
	return func(s *Session) { s.latency = d }
}

func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Session) { s.ids = g }
}

func WithEngine(e Engine) Option {
	return func(s *Session) { s.engine = e }
}

func WithNotifier(n notice.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

func WithLogger(l logger.ILogger) Option {
	return func(s *Session) { s.logger = l }
}

// Session holds the state of one solver page: the selected subject, the
// question being edited, and the solutions produced so far (newest first).
// At most one solve is in flight at a time.
type Session struct {
	id string

	mu       sync.Mutex
	subject  Subject
	question string
	pending  bool
	task     *simulation.Task
	current  *entity.Solution
	history  []*entity.Solution
	updated  time.Time

	clock    simulation.Clock
	latency  time.Duration
	ids      idgen.Generator
	engine   Engine
	notifier notice.Notifier
	logger   logger.ILogger
}

func NewSession(id string, opts ...Option) *Session {
	s := &Session{
		id:       id,
		subject:  DefaultSubject(),
		clock:    simulation.RealClock{},
		latency:  DefaultLatency,
		ids:      idgen.NewUUIDGenerator(),
		engine:   NewCannedEngine(),
		notifier: notice.Discard{},
		logger:   logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.updated = s.clock.Now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SetSubject(value string) error {
	subject, ok := LookupSubject(value)
	if !ok {
		return validation.New("subject", fmt.Sprintf("unknown subject %q", value))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject = subject
	s.updated = s.clock.Now()
	return nil
}

// SetQuestion stores the raw text. It is only checked when Solve runs.
func (s *Session) SetQuestion(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.question = text
	s.updated = s.clock.Now()
}

// Solve starts a deferred solve of the current question. The returned task
// completes once the solution has been recorded. The task keeps the values
// of ctx but not its cancellation: use Cancel to abort.
func (s *Session) Solve(ctx context.Context) (*simulation.Task, error) {
	return s.SolveWith(ctx, nil, nil)
}

// SolveWith is Solve with an optional subject and question applied first.
// The overrides are stored only when the solve is accepted; a rejected call
// leaves the session untouched.
func (s *Session) SolveWith(ctx context.Context, subjectValue, questionText *string) (*simulation.Task, error) {
	var override *Subject
	if subjectValue != nil {
		subject, ok := LookupSubject(*subjectValue)
		if !ok {
			return nil, validation.New("subject", fmt.Sprintf("unknown subject %q", *subjectValue))
		}
		override = &subject
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrPending
	}

	question := s.question
	if questionText != nil {
		question = *questionText
	}
	if strings.TrimSpace(question) == "" {
		s.mu.Unlock()
		s.logger.Warn("SolverSession", "Rejected empty question", map[string]interface{}{
			"session_id": s.id,
		})
		s.notifier.Notify(ctx, notice.Notice{
			Kind:        notice.KindValidationFailed,
			SessionID:   s.id,
			Title:       constant.SolverValidationTitle,
			Description: constant.SolverValidationDescription,
			Variant:     notice.VariantDestructive,
			At:          s.clock.Now(),
		})
		return nil, ErrEmptyQuestion
	}

	if override != nil {
		s.subject = *override
	}
	s.question = question
	subject := s.subject
	runCtx := context.WithoutCancel(ctx)

	s.pending = true
	s.updated = s.clock.Now()
	s.task = simulation.Schedule(s.clock, s.latency, func() error {
		return s.complete(runCtx, subject, question)
	})
	task := s.task
	s.mu.Unlock()

	s.logger.Info("SolverSession", "Solve scheduled", map[string]interface{}{
		"session_id": s.id,
		"subject":    subject.Value,
		"latency_ms": s.latency.Milliseconds(),
	})
	return task, nil
}

func (s *Session) complete(ctx context.Context, subject Subject, question string) error {
	answer, err := s.engine.Solve(ctx, Problem{Subject: subject, Question: question})
	if err != nil {
		s.mu.Lock()
		s.pending = false
		s.task = nil
		s.updated = s.clock.Now()
		s.mu.Unlock()

		s.logger.Error("SolverSession", "Engine failed", map[string]interface{}{
			"session_id": s.id,
			"error":      err.Error(),
		})
		s.notifier.Notify(ctx, notice.Notice{
			Kind:        notice.KindSolveFailed,
			SessionID:   s.id,
			Title:       constant.SolverFailedTitle,
			Description: err.Error(),
			Variant:     notice.VariantDestructive,
			At:          s.clock.Now(),
		})
		return fmt.Errorf("solve: %w", err)
	}

	now := s.clock.Now()
	solution := &entity.Solution{
		Id:           s.ids.NewID(),
		SubjectValue: subject.Value,
		Subject:      subject.Label,
		Question:     question,
		Answer:       answer.Answer,
		Steps:        answer.Steps,
		Verification: answer.Verification,
		Timestamp:    now,
	}

	s.mu.Lock()
	s.history = append([]*entity.Solution{solution}, s.history...)
	s.current = solution
	s.pending = false
	s.task = nil
	s.updated = now
	s.mu.Unlock()

	s.logger.Info("SolverSession", "Solution ready", map[string]interface{}{
		"session_id":  s.id,
		"solution_id": solution.Id,
	})
	s.notifier.Notify(ctx, notice.Notice{
		Kind:        notice.KindSolutionReady,
		SessionID:   s.id,
		Title:       constant.SolverReadyTitle,
		Description: constant.SolverReadyDescription,
		Variant:     notice.VariantDefault,
		At:          now,
	})
	return nil
}

// SelectFromHistory makes the solution with the given id current. Unknown
// ids leave the session untouched.
func (s *Session) SelectFromHistory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sol := range s.history {
		if sol.Id == id {
			s.current = sol
			s.updated = s.clock.Now()
			return true
		}
	}
	return false
}

// Cancel aborts the in-flight solve if its engine call has not started.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending || s.task == nil {
		return false
	}
	if !s.task.Cancel() {
		return false
	}
	s.pending = false
	s.task = nil
	s.updated = s.clock.Now()
	s.logger.Info("SolverSession", "Solve cancelled", map[string]interface{}{"session_id": s.id})
	return true
}

// Task returns the in-flight task, or nil when idle.
func (s *Session) Task() *simulation.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task
}

func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

type Snapshot struct {
	ID        string
	Subject   Subject
	Question  string
	Pending   bool
	Current   *entity.Solution
	History   []*entity.Solution
	UpdatedAt time.Time
}

// Recent returns up to constant.SolverRecentHistoryLimit newest solutions.
func (snap Snapshot) Recent() []*entity.Solution {
	if len(snap.History) <= constant.SolverRecentHistoryLimit {
		return snap.History
	}
	return snap.History[:constant.SolverRecentHistoryLimit]
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]*entity.Solution, len(s.history))
	copy(history, s.history)

	return Snapshot{
		ID:        s.id,
		Subject:   s.subject,
		Question:  s.question,
		Pending:   s.pending,
		Current:   s.current,
		History:   history,
		UpdatedAt: s.updated,
	}
}
