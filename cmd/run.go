package cmd

import (
	"context"
	"fmt"
	"time"

	"backendjobs/api"
	"backendjobs/application"
	"backendjobs/config"
	"backendjobs/database"
	"backendjobs/infrastructure"
	"backendjobs/repository"
	"backendjobs/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting backend jobs service...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	uowFactory := repository.NewUnitOfWorkFactory(db)

	// Optional outbound integrations
	var publisher service.AlertPublisher
	if cfg.DiscordAlertsEnabled() {
		discordPublisher, err := infrastructure.NewDiscordAlertPublisher(cfg.AlertWebhookID, cfg.AlertWebhookToken)
		if err != nil {
			return fmt.Errorf("failed to initialize discord alerts: %w", err)
		}
		publisher = discordPublisher
		log.Info("Discord alert mirroring enabled")
	}

	var queryRunner service.QueryRunner
	if cfg.HasuraBaseURL != "" {
		queryRunner = infrastructure.NewHasuraClient(cfg.HasuraBaseURL, cfg.HasuraAdminSecret)
		log.WithField("baseUrl", cfg.HasuraBaseURL).Info("Hasura query runner configured")
	} else {
		log.Warn("HASURA_BASE_URL not set, notifications with a data query will fail")
	}

	// Initialize services
	alerts := service.NewAlertService(uowFactory, publisher)
	coupons := service.NewCouponPaymentService(uowFactory, alerts, cfg.Accrual)
	rates := service.NewInterestRolloverService(uowFactory, cfg.Accrual)
	compartments := service.NewCompartmentService(uowFactory, cfg.Accrual)
	notifications := service.NewNotificationService(uowFactory, queryRunner)

	executor := application.NewJobExecutor(coupons, rates, compartments, notifications)
	dispatcher := application.NewDispatcher(uowFactory, executor)
	log.WithField("events", executor.Events()).Info("Job executor initialized")

	if cfg.SchedulerEnabled {
		stop := application.NewCronWorker(dispatcher).Start(ctx, cfg.SchedulerHour)
		defer stop()
		log.WithField("hourUtc", cfg.SchedulerHour).Info("In-process scheduler started")
	}

	server := api.NewServer(cfg.HTTPAddr, cfg.CronAuthToken, dispatcher)
	serverErr := server.Run(ctx)

	// Let background jobs finish before the pool closes
	log.Info("Waiting for running jobs to finish...")
	done := make(chan struct{})
	go func() {
		dispatcher.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("Shutdown completed")
	case <-time.After(5 * time.Minute):
		log.Warn("Shutdown timeout exceeded, abandoning running jobs")
	}

	return serverErr
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("logLevel", cfg.LogLevel).Warn("Invalid LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
