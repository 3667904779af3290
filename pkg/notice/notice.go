package notice

import (
	"context"
	"sync"
	"time"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Kind string

const (
	KindSolutionReady    Kind = "solution_ready"
	KindSolveFailed      Kind = "solve_failed"
	KindReplyReady       Kind = "reply_ready"
	KindReplyFailed      Kind = "reply_failed"
	KindValidationFailed Kind = "validation_failed"
)

// Notice is the short-lived toast shown to the user when an operation
// completes or is rejected.
type Notice struct {
	Kind        Kind      `json:"kind"`
	SessionID   string    `json:"session_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	Sources     []string  `json:"sources,omitempty"`
	At          time.Time `json:"at"`
}

// Notifier delivers notices. Implementations must not block for long:
// sessions call Notify from their completion callbacks.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(context.Context, Notice) {}

// Recorder keeps every notice it receives, in order.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, if any.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
