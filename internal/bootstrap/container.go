package bootstrap

import (
	"context"
	"fmt"
	"time"

	"problem-solver-be/internal/config"
	"problem-solver-be/internal/controller"
	"problem-solver-be/internal/handler"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/internal/repository/memory"
	"problem-solver-be/internal/service"
	"problem-solver-be/internal/websocket"
	"problem-solver-be/pkg/chat"
	"problem-solver-be/pkg/idgen"
	pktNats "problem-solver-be/pkg/nats"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/solver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const noticeTopic = "session_notices"

type Container struct {
	Logger logger.ILogger

	// Controllers
	SolverController controller.ISolverController
	ChatController   controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	noticeLogger := logger.NewIsolatedLogger(cfg.App.NoticeLogFilePath)

	c := &Container{Logger: sysLogger}

	ids, err := idgen.New(cfg.Simulation.IDStrategy)
	if err != nil {
		return nil, err
	}
	engine, err := solver.NewEngine(cfg.Simulation.Engine)
	if err != nil {
		return nil, err
	}
	responder, err := chat.NewResponder(cfg.Simulation.Responder, nil)
	if err != nil {
		return nil, err
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		rdb, err = connectRedis(ctx, cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Redis unavailable, notices stay on this instance", map[string]interface{}{"error": err.Error()})
			rdb = nil
		} else {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	hub := websocket.NewHub(rdb, uuid.NewString(), noticeLogger)

	// 4. Services
	notifier := service.NewNotificationService(service.NewPublisherService(pubSub, noticeTopic), sysLogger)
	consumer := service.NewConsumerService(pubSub, noticeTopic, eventPublisher, sysLogger, hub)

	clock := simulation.RealClock{}

	solverRepo := memory.NewSessionRepository[*solver.Session](cfg.Session.TTL, cfg.Session.CleanupInterval)
	solverService := service.NewSolverService(solverRepo, ids, cfg.Simulation.WaitTimeout, sysLogger,
		solver.WithClock(clock),
		solver.WithLatency(cfg.Simulation.SolveLatency),
		solver.WithIDGenerator(ids),
		solver.WithEngine(engine),
		solver.WithNotifier(notifier),
		solver.WithLogger(sysLogger),
	)

	chatRepo := memory.NewSessionRepository[*chat.Session](cfg.Session.TTL, cfg.Session.CleanupInterval)
	chatService := service.NewChatService(chatRepo, ids, cfg.Simulation.WaitTimeout, sysLogger,
		chat.WithClock(clock),
		chat.WithLatency(cfg.Simulation.ReplyLatency),
		chat.WithIDGenerator(ids),
		chat.WithResponder(responder),
		chat.WithNotifier(notifier),
		chat.WithLogger(sysLogger),
	)

	// 5. Controllers & Handlers
	c.SolverController = controller.NewSolverController(solverService)
	c.ChatController = controller.NewChatController(chatService)
	c.NotificationHandler = handler.NewNotificationHandler(hub, sysLogger, solverService, chatService)
	c.WebSocketHub = hub
	c.ConsumerService = consumer

	return c, nil
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
