package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/simverse/simverse-api/internal/config"
	"github.com/simverse/simverse-api/internal/generation"
	"github.com/simverse/simverse-api/internal/platform/filestore"
	"github.com/simverse/simverse-api/internal/platform/gemini"
	"github.com/simverse/simverse-api/internal/platform/postgres"
	"github.com/simverse/simverse-api/internal/service"
	"github.com/simverse/simverse-api/internal/service/auth"
	"github.com/simverse/simverse-api/internal/store"
)

// application holds the shared application dependencies so setup and cleanup
// stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is non-nil only for the postgres backend.
	db         *sql.DB
	stateStore store.StateStore

	jwtService auth.JWTService
	generator  generation.Generator // nil when external generation is disabled

	accountService  *service.AccountService
	progressService *service.ProgressService
	lessonService   *service.LessonService
}

// newApplication creates an application instance with all dependencies
// initialized: the selected state store backend, authentication services,
// the optional external generator, and the domain services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStateStore(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	if cfg.LLM.GeminiAPIKey != "" {
		app.generator, err = gemini.New(ctx, logger.With("component", "llm_generator"), cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		logger.Info("external lesson generator initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Info("no LLM API key configured, lessons served from fallback engine")
	}

	hasher := auth.NewBcryptHasher()
	app.accountService = service.NewAccountService(app.stateStore, hasher, logger)
	app.progressService = service.NewProgressService(app.stateStore, logger)
	app.lessonService = service.NewLessonService(app.stateStore, app.generator, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupStateStore selects and initializes the configured storage backend.
// The postgres backend runs its migrations before serving.
func (app *application) setupStateStore(ctx context.Context) error {
	switch app.config.Storage.Backend {
	case "postgres":
		db, err := postgres.Open(ctx, app.config.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.db = db
		app.stateStore = postgres.NewStateStore(db, app.logger)
		app.logger.Info("postgres state store initialized")

	case "file":
		fs, err := filestore.New(app.config.Storage.FilePath, app.logger)
		if err != nil {
			return fmt.Errorf("failed to open file store: %w", err)
		}
		app.stateStore = fs
		app.logger.Info("file state store initialized", "path", app.config.Storage.FilePath)

	default:
		return fmt.Errorf("unknown storage backend %q", app.config.Storage.Backend)
	}

	return nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
