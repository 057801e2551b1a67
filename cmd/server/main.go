package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mstern/applytrack/api"
	dbfiles "github.com/mstern/applytrack/db"
	"github.com/mstern/applytrack/internal/ai"
	"github.com/mstern/applytrack/internal/config"
	"github.com/mstern/applytrack/internal/db"
	"github.com/mstern/applytrack/internal/jobs"
	"github.com/mstern/applytrack/internal/repository/sqlite"
	"github.com/mstern/applytrack/internal/scanner"
	"github.com/mstern/applytrack/internal/tracker"
	"github.com/mstern/applytrack/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	log.Printf("Starting applytrack server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	conn, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, conn, dbfiles.Migrations, dbfiles.SeedFiles); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := sqlite.New(conn, logger)
	store := tracker.New(repo, logger)
	sc := scanner.New(store, cfg.ScannerConfig.MinConfidence, logger)

	// The question engine degrades to template banks when Ollama is not
	// reachable, so a client construction failure is not fatal.
	var llm *ollama.Client
	if client, err := ollama.NewClient(cfg.OllamaConfig, nil, logger); err != nil {
		logger.Error("ollama client unavailable, using template fallback", "err", err)
	} else {
		llm = client
	}

	engine, err := ai.NewEngine(ctx, llm, cfg.EngineConfig, repo, repo, logger)
	if err != nil {
		log.Fatalf("Failed to build question engine: %v", err)
	}

	// Background workers
	jobRepo := jobs.NewRepository(conn)
	handlers := jobs.Handlers(sc, engine, repo, logger)
	pool := jobs.NewWorkerPool(jobRepo, handlers, logger, cfg.WorkerCount)

	workerCtx, workerCancel := context.WithCancel(ctx)
	pool.Start(workerCtx)

	handler := api.SetupRoutes(cfg, version, buildTime, conn, pool)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Stop workers after the server stops accepting requests
	workerCancel()
	pool.Stop()

	if llm != nil {
		if err := llm.Close(); err != nil {
			log.Printf("Error closing ollama client: %v", err)
		}
	}

	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
