package chat

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

const DefaultLatency = 2 * time.Second

var (
	ErrPending      = errors.New("chat: a reply is already in progress")
	ErrEmptyMessage = validation.New("input", constant.ChatValidationDescription)
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

func WithResponder(r Responder) Option {
	return func(s *Session) { s.responder = r }
}

func WithNotifier(n notice.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

func WithLogger(l logger.ILogger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is one chat conversation. The transcript only grows, and a user
// message is always recorded before the reply to it.
type Session struct {
	id string

	mu       sync.Mutex
	input    string
	pending  bool
	task     *simulation.Task
	messages []*entity.ChatMessage
	updated  time.Time

	clock     simulation.Clock
	latency   time.Duration
	ids       idgen.Generator
	responder Responder
	notifier  notice.Notifier
	logger    logger.ILogger
}

// NewSession starts a conversation that already holds the assistant greeting.
func NewSession(id string, opts ...Option) *Session {
	s := &Session{
		id:        id,
		clock:     simulation.RealClock{},
		latency:   DefaultLatency,
		ids:       idgen.NewUUIDGenerator(),
		responder: NewCannedResponder(nil),
		notifier:  notice.Discard{},
		logger:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	sources := make([]string, len(constant.ChatGreetingSources))
	copy(sources, constant.ChatGreetingSources)

	s.updated = s.clock.Now()
	s.messages = []*entity.ChatMessage{{
		Id:        s.ids.NewID(),
		Role:      constant.ChatMessageRoleAssistant,
		Content:   constant.ChatGreeting,
		Sources:   sources,
		CreatedAt: s.updated,
	}}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// SetInput replaces the draft. Editing is allowed while a reply is pending.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
	s.updated = s.clock.Now()
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// UseQuickQuestion copies the suggested prompt at index into the draft.
// It never sends.
func (s *Session) UseQuickQuestion(index int) error {
	if index < 0 || index >= len(constant.ChatQuickQuestions) {
		return validation.New("index", fmt.Sprintf("quick question index must be between 0 and %d", len(constant.ChatQuickQuestions)-1))
	}
	s.SetInput(constant.ChatQuickQuestions[index])
	return nil
}

// QuickQuestionsVisible reports whether the transcript still holds only the
// greeting.
func (s *Session) QuickQuestionsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages) == 1
}

// Send records the draft as a user message and schedules the reply. Like
// solver.Session.Solve, the task keeps ctx values but not its cancellation.
func (s *Session) Send(ctx context.Context) (*simulation.Task, error) {
	return s.SendText(ctx, nil)
}

// SendText sends text instead of the draft when it is non-nil. A rejected
// call leaves the draft as it was.
func (s *Session) SendText(ctx context.Context, override *string) (*simulation.Task, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrPending
	}

	text := s.input
	if override != nil {
		text = *override
	}
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notice.Notice{
			Kind:        notice.KindValidationFailed,
			SessionID:   s.id,
			Title:       constant.ChatValidationTitle,
			Description: constant.ChatValidationDescription,
			Variant:     notice.VariantDestructive,
			At:          s.clock.Now(),
		})
		return nil, ErrEmptyMessage
	}

	now := s.clock.Now()
	userMsg := &entity.ChatMessage{
		Id:        s.ids.NewID(),
		Role:      constant.ChatMessageRoleUser,
		Content:   text,
		CreatedAt: now,
	}
	s.messages = append(s.messages, userMsg)
	s.input = ""
	s.pending = true
	s.updated = now

	runCtx := context.WithoutCancel(ctx)
	s.task = simulation.Schedule(s.clock, s.latency, func() error {
		return s.complete(runCtx, text)
	})
	task := s.task
	s.mu.Unlock()

	s.logger.Info("ChatSession", "Reply scheduled", map[string]interface{}{
		"session_id": s.id,
		"message_id": userMsg.Id,
		"latency_ms": s.latency.Milliseconds(),
	})
	return task, nil
}

func (s *Session) complete(ctx context.Context, text string) error {
	reply, err := s.responder.Respond(ctx, text)
	if err != nil {
		s.mu.Lock()
		s.pending = false
		s.task = nil
		s.updated = s.clock.Now()
		s.mu.Unlock()

		s.logger.Error("ChatSession", "Responder failed", map[string]interface{}{
			"session_id": s.id,
			"error":      err.Error(),
		})
		s.notifier.Notify(ctx, notice.Notice{
			Kind:        notice.KindReplyFailed,
			SessionID:   s.id,
			Title:       constant.ChatFailedTitle,
			Description: err.Error(),
			Variant:     notice.VariantDestructive,
			At:          s.clock.Now(),
		})
		return fmt.Errorf("reply: %w", err)
	}

	now := s.clock.Now()
	msg := &entity.ChatMessage{
		Id:        s.ids.NewID(),
		Role:      constant.ChatMessageRoleAssistant,
		Content:   reply.Content,
		Sources:   reply.Sources,
		CreatedAt: now,
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.pending = false
	s.task = nil
	s.updated = now
	s.mu.Unlock()

	s.logger.Info("ChatSession", "Reply ready", map[string]interface{}{
		"session_id": s.id,
		"message_id": msg.Id,
	})
	s.notifier.Notify(ctx, notice.Notice{
		Kind:        notice.KindReplyReady,
		SessionID:   s.id,
		Title:       constant.ChatReadyTitle,
		Description: fmt.Sprintf(constant.ChatReadyDescriptionFmt, strings.Join(reply.Sources, ", ")),
		Variant:     notice.VariantDefault,
		Sources:     reply.Sources,
		At:          now,
	})
	return nil
}

// Cancel drops the pending reply. The user message stays in the transcript.
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
	s.logger.Info("ChatSession", "Reply cancelled", map[string]interface{}{"session_id": s.id})
	return true
}

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

func (s *Session) Messages() []*entity.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

type Snapshot struct {
	ID                    string
	Input                 string
	Pending               bool
	Messages              []*entity.ChatMessage
	QuickQuestionsVisible bool
	UpdatedAt             time.Time
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]*entity.ChatMessage, len(s.messages))
	copy(messages, s.messages)

	return Snapshot{
		ID:                    s.id,
		Input:                 s.input,
		Pending:               s.pending,
		Messages:              messages,
		QuickQuestionsVisible: len(s.messages) == 1,
		UpdatedAt:             s.updated,
	}
}
