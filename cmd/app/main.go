package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	"freight/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(cmd.DefaultEnvFiles...)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(configs)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs, logger)
}

func newLogger(c cmd.Config) *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openDatabase(ctx context.Context, c cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gorm_logger.Default.LogMode(gorm_logger.Warn)}
	if c.IsProduction() {
		gormCfg.Logger = gorm_logger.Default.LogMode(gorm_logger.Error)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(c.DB.DSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if c.MigrateOnStart {
		applied, migrateErr := postgres.Migrate(ctx, sqlDB)
		if migrateErr != nil {
			return nil, fmt.Errorf("migrate database: %w", migrateErr)
		}
		logger.InfoContext(ctx, "Database migrated", "applied", applied)
	}

	return gormDB, nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, c cmd.Config, logger *slog.Logger) {
	e, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	if c.IsProduction() {
		e.Logger.SetLevel(log.WARN)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	go func() {
		logger.Info("HTTP server starting", "port", c.HTTPPort, "env", c.AppEnv)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", c.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
