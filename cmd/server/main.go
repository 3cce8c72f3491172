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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"health-risk-analyzer/internal/assessment"
	"health-risk-analyzer/internal/dashboard"
	"health-risk-analyzer/internal/platform/config"
	"health-risk-analyzer/internal/platform/events"
	"health-risk-analyzer/internal/platform/health"
	"health-risk-analyzer/internal/platform/logging"
	"health-risk-analyzer/internal/platform/metrics"
	"health-risk-analyzer/internal/platform/postgres"
	"health-risk-analyzer/internal/platform/telegram"
	"health-risk-analyzer/internal/report"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	var repo assessment.Repository
	switch cfg.Storage {
	case "memory":
		logger.Warn("using in-memory storage, results are lost on restart")
		repo = assessment.NewMemoryRepository()
	default:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("connected to database")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return err
		}
		logger.Info("migrations applied")
		repo = assessment.NewRepository(db)
	}

	// 2. Collaborators
	m := metrics.New()
	renderer := report.NewRenderer(cfg.ReportFont)
	opts := []assessment.Option{
		assessment.WithDelay(cfg.AnalysisDelay),
		assessment.WithRecorder(m),
	}

	if cfg.KafkaBroker != "" {
		publisher := events.NewKafkaPublisher([]string{cfg.KafkaBroker}, cfg.KafkaTopic, logger)
		defer publisher.Close()
		opts = append(opts, assessment.WithPublisher(publisher))
		logger.Info("publishing assessment events", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	}

	tgClient := telegram.NewClient(cfg.TelegramToken)
	if tgClient.Enabled() && cfg.ClinicianChatID != 0 {
		opts = append(opts, assessment.WithNotifier(report.NewNotifier(tgClient, renderer, cfg.ClinicianChatID, logger)))
	} else {
		logger.Info("high-risk notifications disabled: TELEGRAM_BOT_TOKEN or CLINICIAN_CHAT_ID not set")
	}

	// 3. Services
	assessmentSvc := assessment.NewService(repo, logger, opts...)
	assessmentHandler := assessment.NewHandler(assessmentSvc, logger)
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(repo), logger)
	reportHandler := report.NewHandler(repo, renderer, logger)
	healthHandler := health.NewHandler(repo, logger)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	health.RegisterRoutes(r, healthHandler)
	r.Handle("/metrics", m.Handler())

	// Top-level paths kept for existing web clients.
	r.Post("/analyze", assessmentHandler.Analyze)
	r.Get("/dashboard-data", dashboardHandler.Summary)

	r.Route("/api", func(r chi.Router) {
		assessment.RegisterRoutes(r, assessmentHandler)
		dashboard.RegisterRoutes(r, dashboardHandler)
		report.RegisterRoutes(r, reportHandler)
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + cfg.AnalysisDelay,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
