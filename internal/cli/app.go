// Package cli provides the command-line interface for skiff.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/config"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/skiff/internal/logging"
)

// App holds the shared dependencies of the CLI commands: configuration,
// logger, database connection and the use cases built on top of them.
type App struct {
	Config *config.Manager
	Logger zerolog.Logger

	DB           *sql.DB
	HistoryRepo  repository.HistoryRepository
	BookmarkRepo repository.BookmarkRepository
	DownloadRepo repository.DownloadRepository

	History   *usecase.SearchHistoryUseCase
	Bookmarks *usecase.ManageBookmarksUseCase
	Downloads *usecase.ManageDownloadsUseCase

	ctx context.Context
}

// NewApp wires up configuration, logging, the database and the use cases.
// The returned App must be closed with Close.
func NewApp(ctx context.Context) (*App, error) {
	if err := config.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	cfgManager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if err := cfgManager.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cfgManager.Get()

	logger := buildLogger(cfg)
	ctx = logging.WithContext(ctx, logger)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	db, err := sqlite.NewConnection(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	historyRepo := sqlite.NewHistoryRepository(db)
	bookmarkRepo := sqlite.NewBookmarkRepository(db)
	downloadRepo := sqlite.NewDownloadRepository(db)

	return &App{
		Config:       cfgManager,
		Logger:       logger,
		DB:           db,
		HistoryRepo:  historyRepo,
		BookmarkRepo: bookmarkRepo,
		DownloadRepo: downloadRepo,
		History:      usecase.NewSearchHistoryUseCase(historyRepo),
		Bookmarks:    usecase.NewManageBookmarksUseCase(bookmarkRepo),
		Downloads:    usecase.NewManageDownloadsUseCase(downloadRepo),
		ctx:          ctx,
	}, nil
}

// Ctx returns the app context with the logger attached.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases the database connection.
func (a *App) Close() error {
	return sqlite.Close(a.DB)
}

// buildLogger creates a logger from the logging section of the config,
// falling back to defaults for unknown values.
func buildLogger(cfg *config.Config) zerolog.Logger {
	logCfg := logging.DefaultConfig()
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logCfg.Level = level
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	logCfg.TimeFormat = time.RFC3339
	return logging.New(logCfg)
}
