package service

import (
	"context"
	"encoding/json"

	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/notice"
)

// NotificationService is the notice.Notifier handed to every session. It
// only serializes the notice onto the in-process bus; delivery happens in
// the consumer so session callbacks never wait on sockets or brokers.
type NotificationService struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewNotificationService(publisher IPublisherService, log logger.ILogger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		logger:    log,
	}
}

func (s *NotificationService) Notify(ctx context.Context, n notice.Notice) {
	payload, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to encode notice", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("NotificationService", "Failed to publish notice", map[string]interface{}{
			"error":      err.Error(),
			"session_id": n.SessionID,
			"kind":       string(n.Kind),
		})
	}
}
