package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/email"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/infrastructure/persistence"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"github.com/orgdesk/backend/internal/infrastructure/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryCfg := cfg.Telemetry
	telemetryCfg.ServiceName += "-worker"
	providers, err := telemetry.Setup(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if providers.Logs.IsEnabled() {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, providers.Logs.ZapCore(level))
		}))
	}

	host, _ := os.Hostname()
	log.Info("Starting OrgDesk job worker",
		zap.String("env", cfg.App.Env),
		zap.String("host", host),
		zap.Int("max_failures", cfg.Worker.MaxFailures),
	)

	db, err := persistence.NewDatabase(&cfg.Database, config.RoleJobs, persistence.Options{
		Logger:        log,
		LogLevel:      cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		Plugins:       telemetry.DBPlugins(cfg.Telemetry),
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	sender, err := email.NewSender(cfg.Email, cfg.App.Origin, log)
	if err != nil {
		log.Fatal("Failed to initialize email sender", zap.Error(err))
	}

	metrics, err := telemetry.NewJobMetrics(providers.Meter.Meter("orgdesk/worker"))
	if err != nil {
		log.Fatal("Failed to register job metrics", zap.Error(err))
	}

	processor := worker.NewProcessor(
		persistence.NewGormJobRepository(db.DB),
		cfg.Worker,
		log,
		worker.WithExecutor(job.TypeEmail, worker.NewEmailExecutor(sender)),
		worker.WithMetrics(metrics),
		worker.WithLogWriter(persistence.NewGormAuditRepository(db.DB, db.DB)),
	)
	if err := processor.Start(context.Background()); err != nil {
		log.Fatal("Failed to start job worker", zap.Error(err))
	}

	<-ctx.Done()
	log.Info("Shutting down job worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Worker.JobTimeout+5*time.Second)
	defer cancel()
	if err := processor.Stop(shutdownCtx); err != nil {
		log.Error("Job worker forced to stop", zap.Error(err))
	}

	log.Info("Job worker exited gracefully")
}
