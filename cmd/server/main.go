package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/kimkim0621/events-marketing-ai/internal/api"
	"github.com/kimkim0621/events-marketing-ai/internal/config"
	"github.com/kimkim0621/events-marketing-ai/internal/optimizer"
	"github.com/kimkim0621/events-marketing-ai/internal/predictor"
	"github.com/kimkim0621/events-marketing-ai/internal/repository/postgres"
	"github.com/kimkim0621/events-marketing-ai/internal/seed"
	"github.com/kimkim0621/events-marketing-ai/internal/snapshot"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

// buildStrategy maps the configured strategy name to a predictor. A model
// without coefficients still boots: every prediction falls back to the
// heuristic and logs the reason.
func buildStrategy(cfg config.PredictorConfig) predictor.Strategy {
	switch cfg.Strategy {
	case "model":
		return predictor.NewWithFallback(predictor.NewModel(cfg.Coefficients))
	default:
		return predictor.NewHeuristic()
	}
}

func main() {
	configPath := "config/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.Database.URL == "" {
		log.Fatal("database url is required (set database.url or DATABASE_URL)")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Connected to database")

	eventRepo := postgres.NewEventRepo(db)
	mediaRepo := postgres.NewMediaRepo(db)
	knowledgeRepo := postgres.NewKnowledgeRepo(db)

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, eventRepo, mediaRepo, knowledgeRepo); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	// Snapshot cache (optional)
	var cache *snapshot.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable (%v), running without dataset cache", err)
		} else {
			cache = snapshot.NewCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
			log.Printf("Dataset cache enabled (redis %s, ttl %ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
	}

	// Dataset archive (optional)
	var archive *snapshot.Archive
	if cfg.Storage.Enabled {
		archive, err = snapshot.NewArchive(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Storage.Region)
		if err != nil {
			log.Fatalf("Failed to initialize dataset archive: %v", err)
		}
		log.Printf("Dataset archive enabled (s3://%s/%s)", cfg.Storage.Bucket, cfg.Storage.Prefix)
	}

	snapshots := snapshot.NewService(eventRepo, mediaRepo, knowledgeRepo, cache, archive)
	if _, err := snapshots.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load initial dataset: %v", err)
	}
	snapshots.Start(ctx, time.Duration(cfg.Snapshot.RefreshIntervalSeconds)*time.Second)

	engine := optimizer.New(buildStrategy(cfg.Predictor))
	log.Printf("Recommendation engine ready (strategy: %s)", cfg.Predictor.Strategy)

	handlers := api.NewHandlers(engine, snapshots, eventRepo, mediaRepo, knowledgeRepo)
	router := api.SetupRoutes(handlers, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	// Stop the snapshot refresher
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
