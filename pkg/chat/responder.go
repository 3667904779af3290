package chat

import (
	"context"
	"fmt"

	"problem-solver-be/internal/constant"
	"problem-solver-be/pkg/randsrc"
)

const ResponderCanned = "canned"

type Reply struct {
	Content string
	Sources []string
}

// Responder produces the assistant reply to one user message.
type Responder interface {
	Respond(ctx context.Context, text string) (Reply, error)
}

type ResponderFunc func(ctx context.Context, text string) (Reply, error)

func (f ResponderFunc) Respond(ctx context.Context, text string) (Reply, error) { return f(ctx, text) }

// CannedReplies returns copies of the built-in reply templates.
func CannedReplies() []Reply {
	out := make([]Reply, 0, len(constant.ChatCannedReplies))
	for _, tpl := range constant.ChatCannedReplies {
		sources := make([]string, len(tpl.Sources))
		copy(sources, tpl.Sources)
		out = append(out, Reply{Content: tpl.Content, Sources: sources})
	}
	return out
}

// CannedResponder ignores the message and returns one of the canned replies,
// chosen by its picker.
type CannedResponder struct {
	picker  randsrc.Picker
	replies []Reply
}

func NewCannedResponder(picker randsrc.Picker) *CannedResponder {
	if picker == nil {
		picker = randsrc.NewUniformPicker()
	}
	return &CannedResponder{
		picker:  picker,
		replies: CannedReplies(),
	}
}

func (r *CannedResponder) Respond(ctx context.Context, _ string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	picked := r.replies[r.picker.NextIndex(len(r.replies))]

	sources := make([]string, len(picked.Sources))
	copy(sources, picked.Sources)
	return Reply{Content: picked.Content, Sources: sources}, nil
}

func NewResponder(kind string, picker randsrc.Picker) (Responder, error) {
	switch kind {
	case "", ResponderCanned:
		return NewCannedResponder(picker), nil
	default:
		return nil, fmt.Errorf("unsupported chat responder: %s", kind)
	}
}

// QuickQuestions returns the suggested prompts offered on an empty chat.
func QuickQuestions() []string {
	out := make([]string, len(constant.ChatQuickQuestions))
	copy(out, constant.ChatQuickQuestions)
	return out
}
