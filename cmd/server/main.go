package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "github.com/ezhulati/liftout-platform-sub000/internal/api/http"
	"github.com/ezhulati/liftout-platform-sub000/internal/authz"
	"github.com/ezhulati/liftout-platform-sub000/internal/config"
	"github.com/ezhulati/liftout-platform-sub000/internal/logger"
	"github.com/ezhulati/liftout-platform-sub000/internal/repository/postgres"
	"github.com/ezhulati/liftout-platform-sub000/internal/security"
	"github.com/ezhulati/liftout-platform-sub000/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Liftout Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

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

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

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
		logger.Info("Push notifications enabled")
	}

	notifier := service.NewDispatchNotifier(
		store.NotificationRepository,
		emailSvc,
		pushSvc,
		cfg.Notifier.Workers,
		cfg.Notifier.QueueSize,
	)
	notifier.Start(ctx)

	resolver := authz.NewResolver(store.TeamRepository, store.CompanyRepository, store.OpportunityRepository)

	appSvc := service.NewApplicationService(
		store.ApplicationRepository,
		store.OpportunityRepository,
		store.TeamRepository,
		store.CompanyRepository,
		store.TxManager,
		resolver,
		notifier,
	)
	eoiSvc := service.NewEOIService(
		store.EOIRepository,
		store.TeamRepository,
		store.CompanyRepository,
		store.OpportunityRepository,
		notifier,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	router := httpapi.NewRouter(tokenManager, appSvc, eoiSvc, noteSvc)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	cancel() // stops the notifier workers
	logger.Info("Server stopped")
}
