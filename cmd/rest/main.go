package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"problem-solver-be/internal/bootstrap"
	"problem-solver-be/internal/config"
	"problem-solver-be/internal/server"
	"problem-solver-be/internal/tracer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	// 3. Tracing
	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, container.Logger)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			container.Logger.Warn("Main", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 4. Start Background Services
	go container.WebSocketHub.Run(ctx)
	if err := container.ConsumerService.Consume(ctx); err != nil {
		container.Logger.Error("Main", "Notice consumer failed to start", map[string]interface{}{"error": err.Error()})
	}

	// 5. Initialize & Run Server
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			container.Logger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("Main", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
