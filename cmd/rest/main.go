package main

import (
	"context"
	"log"

	"conote-be/internal/bootstrap"
	"conote-be/internal/config"
	"conote-be/internal/server"
	"conote-be/internal/tracer"
	"conote-be/pkg/database"
)

func main() {
	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Background consumers
	ctx := context.Background()
	if err := container.NotificationRouter.Consume(ctx); err != nil {
		log.Panicf("Failed to start notification router: %v", err)
	}
	if err := container.DeliveryWorker.Consume(ctx); err != nil {
		log.Panicf("Failed to start delivery worker: %v", err)
	}
	if err := container.CommentBroadcaster.Consume(ctx); err != nil {
		log.Panicf("Failed to start comment broadcaster: %v", err)
	}

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
