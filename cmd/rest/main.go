package main

import (
	"context"
	"log"
	"time"

	"mentoring-marketplace-be/internal/bootstrap"
	"mentoring-marketplace-be/internal/config"
	"mentoring-marketplace-be/internal/scheduler"
	"mentoring-marketplace-be/internal/server"
	"mentoring-marketplace-be/internal/tracer"
	"mentoring-marketplace-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	trigger := scheduler.NewTrigger(
		container.AutoTransitionService,
		time.Duration(cfg.App.SweepIntervalMin)*time.Minute,
		container.Logger,
	)
	trigger.Start(context.Background())
	defer trigger.Stop()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
