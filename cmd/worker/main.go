package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/config"
	"github.com/fiveflix/videos-ms-go/internal/db"
	workerHandler "github.com/fiveflix/videos-ms-go/internal/handler/worker"
	"github.com/fiveflix/videos-ms-go/internal/logger"
	"github.com/fiveflix/videos-ms-go/internal/repository/mariadb"
	"github.com/fiveflix/videos-ms-go/internal/task"
	"github.com/fiveflix/videos-ms-go/internal/usecase/auth"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	logger.Init()

	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	refreshRepo := mariadb.NewRefreshTokenRepository(database.DB)
	accessRepo := mariadb.NewAccessTokenRepository(database.DB)
	sweepSvc := auth.NewSweeper(refreshRepo, accessRepo)

	redisOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepTokens, func(ctx context.Context, t *asynq.Task) error {
		return workerHandler.SweepTokensHandler(ctx, sweepSvc)
	})

	runScheduler(ctx, redisOpt)
	runWorker(ctx, mux, redisOpt, database)
}

// runScheduler enqueues the periodic token sweep.
func runScheduler(ctx context.Context, redisOpt asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register(task.SweepSchedule, task.NewSweepTokensTask()); err != nil {
		logger.Errorf(ctx, "❌  Failed to register sweep schedule: %v", err)
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Errorf(context.Background(), "❌  Scheduler failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🕑 Scheduler started")
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, redisOpt asynq.RedisClientOpt, database *db.Database) {
	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 10})

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()
	<-shutdownCtx.Done()

	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
