package service

import (
	"context"
	"encoding/json"
	"time"

	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/events"
	"problem-solver-be/pkg/notice"

	"github.com/ThreeDotsLabs/watermill/message"
)

// NoticeDelivery pushes a notice to whoever watches the session, typically
// the websocket hub.
type NoticeDelivery interface {
	Deliver(ctx context.Context, n notice.Notice)
}

// EventPublisher forwards notices to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	deliveries     []NoticeDelivery
	eventPublisher EventPublisher
	publishTimeout time.Duration
	logger         logger.ILogger
}

// NewConsumerService builds the consumer of the notice topic. eventPublisher
// may be nil when no external bus is configured.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	eventPublisher EventPublisher,
	log logger.ILogger,
	deliveries ...NoticeDelivery,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		deliveries:     deliveries,
		eventPublisher: eventPublisher,
		publishTimeout: 5 * time.Second,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Malformed payloads are acked so they are not redelivered forever.
	defer msg.Ack()

	var n notice.Notice
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		cs.logger.Error("ConsumerService", "Failed to decode notice", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, d := range cs.deliveries {
		d.Deliver(ctx, n)
	}

	if cs.eventPublisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, cs.publishTimeout)
	defer cancel()
	if err := cs.eventPublisher.Publish(pubCtx, events.FromNotice(n)); err != nil {
		cs.logger.Warn("ConsumerService", "Failed to forward notice to event bus", map[string]interface{}{
			"error":      err.Error(),
			"session_id": n.SessionID,
		})
	}
}
