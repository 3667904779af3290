package dto

import "time"

type ChatMessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSessionResponse struct {
	Id                    string                 `json:"id"`
	Input                 string                 `json:"input"`
	Pending               bool                   `json:"pending"`
	Messages              []*ChatMessageResponse `json:"messages"`
	QuickQuestionsVisible bool                   `json:"quick_questions_visible"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type QuickQuestionResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type SetInputRequest struct {
	Input string `json:"input"`
}

// SendChatRequest optionally replaces the draft with Text before sending.
type SendChatRequest struct {
	Text *string `json:"text,omitempty"`
	Wait bool    `json:"wait"`
}
