package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/youchat/youchat-api/internal/api"
	apimiddleware "github.com/youchat/youchat-api/internal/api/middleware"
	"github.com/youchat/youchat-api/internal/config"
	"github.com/youchat/youchat-api/internal/platform/gemini"
	"github.com/youchat/youchat-api/internal/platform/postgres"
	"github.com/youchat/youchat-api/internal/platform/youtube"
	"github.com/youchat/youchat-api/internal/service"
	"github.com/youchat/youchat-api/internal/service/auth"
	"github.com/youchat/youchat-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	runner *task.TaskRunner

	authHandler       *api.AuthHandler
	chatHandler       *api.ChatHandler
	transcriptHandler *api.TranscriptHandler
	sessionHandler    *api.SessionHandler
	summaryHandler    *api.SummaryHandler
	authMiddleware    *apimiddleware.AuthMiddleware
}

// newApplication connects to dependencies and wires the full object graph.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		db.Close()
		return nil, err
	}

	// Stores
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	sessionStore := postgres.NewPostgresSessionStore(db, log)
	messageStore := postgres.NewPostgresMessageStore(db, log)
	transcriptStore := postgres.NewPostgresTranscriptStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db)

	// External clients
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	generator, err := gemini.NewGenerator(ctx, log, cfg.LLM)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	youtubeClient := youtube.NewClient(log)

	// Services
	transcriptService := service.NewTranscriptService(log, transcriptStore, youtubeClient)
	chatService := service.NewChatService(log, sessionStore, messageStore, transcriptService, generator)

	factory, err := task.NewSummaryTaskFactory(transcriptService, transcriptStore, generator, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create summary task factory: %w", err)
	}

	runnerCfg := task.DefaultTaskRunnerConfig()
	if cfg.Task.WorkerCount > 0 {
		runnerCfg.WorkerCount = cfg.Task.WorkerCount
	}
	if cfg.Task.QueueSize > 0 {
		runnerCfg.QueueSize = cfg.Task.QueueSize
	}
	if cfg.Task.StuckTaskAgeMinutes > 0 {
		runnerCfg.StuckTaskAge = time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute
	}
	runner := task.NewTaskRunner(taskStore, runnerCfg, log)
	runner.SetHydrator(factory)

	summaryService := service.NewSummaryService(log, transcriptService, transcriptStore, factory, runner)

	// Auth
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		cfg:               cfg,
		logger:            log,
		db:                db,
		runner:            runner,
		authHandler:       api.NewAuthHandler(userStore, jwtService, auth.NewBcryptVerifier(), log),
		chatHandler:       api.NewChatHandler(chatService, log),
		transcriptHandler: api.NewTranscriptHandler(transcriptService, log),
		sessionHandler:    api.NewSessionHandler(sessionStore, messageStore, log),
		summaryHandler:    api.NewSummaryHandler(summaryService, log),
		authMiddleware:    apimiddleware.NewAuthMiddleware(jwtService),
	}, nil
}

// Run starts background workers and serves HTTP until shutdown.
func (app *application) Run() error {
	if err := app.runner.Start(); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}

	return serveHTTP(app)
}

// Close releases resources held by the application.
func (app *application) Close() {
	if app.runner != nil {
		app.runner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn("failed to close database", "error", err)
		}
	}
}
