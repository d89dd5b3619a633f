// Package main is the entry point for the fleet insights HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleetsight/insights/internal/cache"
	"github.com/fleetsight/insights/internal/config"
	"github.com/fleetsight/insights/internal/database"
	"github.com/fleetsight/insights/internal/repository"
	"github.com/fleetsight/insights/internal/server"
)

func main() {
	// Local development reads a .env file; in deployment the
	// environment is set by the orchestrator.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	log.Println("Successfully connected to database")

	packetRepo := repository.NewPostgresPacketRepository(db.DB)

	deps := &server.Dependencies{
		Config:     cfg,
		PacketRepo: packetRepo,
	}

	// The snapshot cache is optional; the service runs without Redis.
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		snapshotCache, err := cache.NewSnapshotCache(ctx, &cfg.Redis)
		cancel()
		if err != nil {
			log.Printf("Snapshot cache disabled: %v", err)
		} else {
			defer func() {
				if err := snapshotCache.Close(); err != nil {
					log.Printf("Error closing snapshot cache: %v", err)
				}
			}()
			deps.SnapshotCache = snapshotCache
			log.Println("Snapshot cache enabled")
		}
	}

	srv := server.New(deps)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		log.Printf("Failed to start server: %v", err)
		panic(err) // Use panic instead of log.Fatalf to ensure defer runs
	}
}
