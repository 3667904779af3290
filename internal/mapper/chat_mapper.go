package mapper

import (
	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/entity"
	"problem-solver-be/pkg/chat"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}
	var sources []string
	if len(msg.Sources) > 0 {
		sources = make([]string, len(msg.Sources))
		copy(sources, msg.Sources)
	}

	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		Sources:   sources,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) SnapshotToResponse(snap chat.Snapshot) *dto.ChatSessionResponse {
	messages := make([]*dto.ChatMessageResponse, 0, len(snap.Messages))
	for _, msg := range snap.Messages {
		messages = append(messages, m.MessageToResponse(msg))
	}

	return &dto.ChatSessionResponse{
		Id:                    snap.ID,
		Input:                 snap.Input,
		Pending:               snap.Pending,
		Messages:              messages,
		QuickQuestionsVisible: snap.QuickQuestionsVisible,
		UpdatedAt:             snap.UpdatedAt,
	}
}

func (m *ChatMapper) QuickQuestionsToResponse(questions []string) []dto.QuickQuestionResponse {
	result := make([]dto.QuickQuestionResponse, 0, len(questions))
	for i, q := range questions {
		result = append(result, dto.QuickQuestionResponse{Index: i, Text: q})
	}
	return result
}
