package events

import (
	"time"

	"problem-solver-be/pkg/notice"
)

// Event is anything published on the external event bus. EventType becomes
// the last token of the subject.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// FromNotice wraps a session notice as an event named after its kind.
func FromNotice(n notice.Notice) BaseEvent {
	data := map[string]interface{}{
		"session_id":  n.SessionID,
		"title":       n.Title,
		"description": n.Description,
		"variant":     string(n.Variant),
		"at":          n.At.Format(time.RFC3339Nano),
	}
	if len(n.Sources) > 0 {
		data["sources"] = n.Sources
	}
	return BaseEvent{
		Type:       string(n.Kind),
		Data:       data,
		OccurredAt: n.At,
	}
}
