package entity

import "time"

// ChatMessage is one entry of a chat transcript. Role is one of
// constant.ChatMessageRoleUser or constant.ChatMessageRoleAssistant; only
// assistant messages carry sources.
type ChatMessage struct {
	Id        string
	Role      string
	Content   string
	Sources   []string
	CreatedAt time.Time
}
