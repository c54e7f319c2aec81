// cmd/crypto-trace-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/crypto-trace/internal/api/rest/v1"
	"github.com/MGTheTrain/crypto-trace/internal/app"
	"github.com/MGTheTrain/crypto-trace/internal/domain/runs"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-trace/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/config"
	"github.com/MGTheTrain/crypto-trace/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envLoaded, err := config.LoadDotEnv(".env")
	if err != nil {
		return err
	}

	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}
	if envLoaded {
		log.Info("Loaded environment overrides from .env")
	}

	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn(fmt.Sprintf("Failed to close database: %v", err))
		}
	}()

	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db          *gorm.DB
	engine      *app.Engine
	runRecorder runs.RunRecorderService
	runMetadata runs.RunMetadataService
}

// initializeDependencies sets up the run-history store, its services and the engine
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	runRepo, err := persistence.NewGormRunRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run repository: %w", err)
	}

	runRecorder, err := app.NewRunRecorderService(runRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run recorder service: %w", err)
	}

	runMetadata, err := app.NewRunMetadataService(runRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metadata service: %w", err)
	}

	engine, err := app.NewEngine(log, cryptography.NewSecureRandomSource(), cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize processors: %w", err)
	}
	log.Info("Cryptographic processors initialized successfully")

	return &appDependencies{
		db:          db,
		engine:      engine,
		runRecorder: runRecorder,
		runMetadata: runMetadata,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", v1.RunIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1.SetupRoutes(r, deps.engine, deps.runRecorder, deps.runMetadata, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info(fmt.Sprintf("Received signal %v, initiating graceful shutdown", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
