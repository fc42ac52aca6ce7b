package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/ezhulati/liftout-platform-sub000/internal/config"
	"github.com/ezhulati/liftout-platform-sub000/internal/jobs"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
	"github.com/ezhulati/liftout-platform-sub000/internal/scheduler"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Run all jobs once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Liftout cron runner...", "run_once", *runOnce)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pushSvc service.PushService
	if cfg.Push.Enabled {
		pushSvc, err = service.NewPushService(ctx, cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize push service", "error", err)
			log.Fatalf("Failed to initialize push service: %v", err)
		}
	}

	notifier := service.NewDispatchNotifier(
		store.NotificationRepository,
		emailSvc,
		pushSvc,
		cfg.Notifier.Workers,
		cfg.Notifier.QueueSize,
	)
	notifier.Start(ctx)

	runner := jobs.NewJobRunner(store, notifier, cfg)

	if *runOnce {
		logger.Info("Running jobs once")
		runner.SendDeadlineReminders()
		runner.ExpireStaleEOIs()
		logger.Info("Jobs finished")
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down cron runner...")
	sched.Stop()
	cancel()
	logger.Info("Cron runner stopped")
}
