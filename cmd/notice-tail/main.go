// Command notice-tail prints session notices published on the NATS stream.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"problem-solver-be/internal/config"
	"problem-solver-be/pkg/events"
	pktNats "problem-solver-be/pkg/nats"
	"problem-solver-be/pkg/notice"

	"github.com/fatih/color"
)

func format(event events.Event) string {
	p := event.Payload()
	line := fmt.Sprintf("%s %-18s %v  %v: %v",
		event.Timestamp().Format("15:04:05"),
		event.EventType(),
		p["session_id"], p["title"], p["description"])
	if sources, ok := p["sources"].([]interface{}); ok && len(sources) > 0 {
		names := make([]string, 0, len(sources))
		for _, s := range sources {
			names = append(names, fmt.Sprint(s))
		}
		line += " [" + strings.Join(names, ", ") + "]"
	}
	return line
}

func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		color.Red("NATS_URL is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+".>", func(_ context.Context, event events.Event) error {
		if event.Payload()["variant"] == string(notice.VariantDestructive) {
			color.Red("%s", format(event))
		} else {
			color.Green("%s", format(event))
		}
		return nil
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Listening on %s.> (Ctrl+C to stop)", pktNats.SubjectPrefix)
	<-ctx.Done()
}
