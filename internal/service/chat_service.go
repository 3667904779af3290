package service

import (
	"context"
	"fmt"
	"time"

	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/mapper"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/internal/repository/memory"
	"problem-solver-be/pkg/chat"
	"problem-solver-be/pkg/idgen"
)

type IChatService interface {
	QuickQuestions(ctx context.Context) []dto.QuickQuestionResponse
	CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.ChatSessionResponse, error)
	SetInput(ctx context.Context, id string, req *dto.SetInputRequest) (*dto.ChatSessionResponse, error)
	UseQuickQuestion(ctx context.Context, id string, index int) (*dto.ChatSessionResponse, error)
	Send(ctx context.Context, id string, req *dto.SendChatRequest) (*dto.ChatSessionResponse, error)
	Cancel(ctx context.Context, id string) (*dto.CancelResponse, error)
	DeleteSession(ctx context.Context, id string) error
	Exists(id string) bool
}

type chatService struct {
	repo        *memory.SessionRepository[*chat.Session]
	sessionIDs  idgen.Generator
	waitTimeout time.Duration
	options     []chat.Option
	mapper      *mapper.ChatMapper
	logger      logger.ILogger
}

func NewChatService(
	repo *memory.SessionRepository[*chat.Session],
	sessionIDs idgen.Generator,
	waitTimeout time.Duration,
	log logger.ILogger,
	options ...chat.Option,
) IChatService {
	return &chatService{
		repo:        repo,
		sessionIDs:  sessionIDs,
		waitTimeout: waitTimeout,
		options:     options,
		mapper:      mapper.NewChatMapper(),
		logger:      log,
	}
}

func (s *chatService) find(id string) (*chat.Session, error) {
	sess, ok := s.repo.Get(id)
	if !ok {
		return nil, fmt.Errorf("chat session %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

func (s *chatService) QuickQuestions(ctx context.Context) []dto.QuickQuestionResponse {
	return s.mapper.QuickQuestionsToResponse(chat.QuickQuestions())
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error) {
	id := s.sessionIDs.NewID()
	sess := chat.NewSession(id, s.options...)
	s.repo.Save(id, sess)

	s.logger.Info("ChatService", "Session created", map[string]interface{}{"session_id": id})
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *chatService) GetSession(ctx context.Context, id string) (*dto.ChatSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *chatService) SetInput(ctx context.Context, id string, req *dto.SetInputRequest) (*dto.ChatSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	sess.SetInput(req.Input)
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *chatService) UseQuickQuestion(ctx context.Context, id string, index int) (*dto.ChatSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := sess.UseQuickQuestion(index); err != nil {
		return nil, err
	}
	return s.mapper.SnapshotToResponse(sess.Snapshot()), nil
}

func (s *chatService) Send(ctx context.Context, id string, req *dto.SendChatRequest) (*dto.ChatSessionResponse, error) {
	sess, err := s.find(id)
	if err != nil {
		return nil, err
	}
	task, err := sess.SendText(ctx, req.Text)
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

func (s *chatService) Cancel(ctx context.Context, id string) (*dto.CancelResponse, error) {
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

func (s *chatService) DeleteSession(ctx context.Context, id string) error {
	if !s.repo.Delete(id) {
		return fmt.Errorf("chat session %s: %w", id, ErrSessionNotFound)
	}
	s.logger.Info("ChatService", "Session deleted", map[string]interface{}{"session_id": id})
	return nil
}

func (s *chatService) Exists(id string) bool {
	_, ok := s.repo.Get(id)
	return ok
}
