package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/procurement-registry/backend/internal/config"
	"github.com/procurement-registry/backend/internal/db"
	"github.com/procurement-registry/backend/internal/events"
	"go.uber.org/zap"
)

// audit-tail — small console companion that follows the audit stream
// and prints every recorded operation. Useful during investigations
// when opening the admin UI is overkill.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)

	log.Info("audit-tail started", zap.String("stream", events.StreamAudit))

	_ = subscriber.Subscribe(ctx, events.StreamAudit, func(event events.Event) {
		if event.Type != events.EventAuditRecorded {
			return
		}
		log.Info("audit",
			zap.Any("entity", event.Payload["entity_name"]),
			zap.Any("entity_id", event.Payload["entity_id"]),
			zap.Any("action", event.Payload["action"]),
			zap.Any("status", event.Payload["status"]),
			zap.Any("username", event.Payload["username"]),
		)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down audit-tail")
	cancel()
}
