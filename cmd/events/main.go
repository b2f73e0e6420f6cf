package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"property-assistant-be/internal/config"
	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/pkg/events"
	pkgNats "property-assistant-be/pkg/nats"
)

// Tails the analytics event stream. Useful for verifying that chat and
// retrieval events reach NATS with sanitized payloads.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger("logs/events.log", false)

	subscriber, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	subject := "events.>"
	if len(os.Args) > 1 {
		subject = "events." + os.Args[1]
	}

	err = subscriber.Subscribe(subject, "event-tailer", func(ctx context.Context, event events.Event) error {
		sysLogger.Info("EVENTS", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
