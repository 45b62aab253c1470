package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/niklvrr/codybot/internal/config"
	"github.com/niklvrr/codybot/internal/infrastructure/db"
	"github.com/niklvrr/codybot/internal/infrastructure/github"
	"github.com/niklvrr/codybot/internal/infrastructure/repository"
	"github.com/niklvrr/codybot/internal/transport"
	"github.com/niklvrr/codybot/internal/transport/handler"
	"github.com/niklvrr/codybot/internal/usecase/service"
	"github.com/niklvrr/codybot/internal/worker"
	"github.com/niklvrr/codybot/pkg/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewDatabase(ctx, cfg.Database.URL, cfg.MigrationsPath, log)
	if err != nil {
		log.Fatal("failed to init database", zap.Error(err))
	}
	defer pool.Close()

	ghClient, err := github.NewClient(github.Config{
		Token:          cfg.GitHub.Token,
		BaseURL:        cfg.GitHub.APIURL,
		RequestTimeout: cfg.GitHub.RequestTimeout,
	}, log)
	if err != nil {
		log.Fatal("failed to init github client", zap.Error(err))
	}

	// Репозитории
	prRepo := repository.NewPrRepository(pool, log)
	ruleRepo := repository.NewRuleRepository(pool, log)
	userRepo := repository.NewUserRepository(pool, log)
	settingsRepo := repository.NewSettingsRepository(pool, userRepo, cfg.Settings.DefaultIgnoreLabels, log)
	statsRepo := repository.NewStatsRepository(pool, log)

	// Сервисы
	eventSvc := service.NewEventService(prRepo, ruleRepo, ghClient, cfg.GitHub.StatusContext, log)
	userSvc := service.NewUserService(userRepo, log)
	ruleSvc := service.NewRuleService(ruleRepo, log)
	repositorySvc := service.NewRepositoryService(settingsRepo, log)
	statsSvc := service.NewStatsService(statsRepo, log)

	// Очередь событий
	dispatcher := worker.NewDispatcher(worker.Config{
		Workers:    cfg.Worker.Count,
		QueueSize:  cfg.Worker.QueueSize,
		JobTimeout: cfg.Worker.JobTimeout,
	}, worker.NewProcessor(eventSvc, repositorySvc, log), log)
	dispatcher.Start(context.Background())

	if cfg.GitHub.WebhookSecret == "" {
		log.Warn("GITHUB_WEBHOOK_SECRET is empty, webhook signatures are not verified")
	}

	router := transport.NewRouter(transport.Handlers{
		Webhook:    handler.NewWebhookHandler(dispatcher, cfg.GitHub.WebhookSecret, log),
		User:       handler.NewUserHandler(userSvc, log),
		Rule:       handler.NewRuleHandler(ruleSvc, log),
		Repository: handler.NewRepositoryHandler(repositorySvc, log),
		Stats:      handler.NewStatsHandler(statsSvc, log),
		Health:     handler.NewHealthHandler(pool, log),
	}, log)

	server := transport.NewServer(cfg.App.Port, router, log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Сначала перестаем принимать вебхуки, потом дорабатываем очередь
	shutdownErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		dispatcher.Stop(shutdownCtx),
	)
	if shutdownErr != nil {
		log.Warn("graceful shutdown incomplete", zap.Errors("errors", multierr.Errors(shutdownErr)))
	}

	log.Info("codybot stopped")
}
