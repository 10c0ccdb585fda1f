// Package server initializes and runs the document-vault backend: it wires
// configuration, storage backends and services, starts the HTTP API and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/docvault/docvault/internal/logging"
	"github.com/docvault/docvault/internal/server/config"
	"github.com/docvault/docvault/internal/server/documents"
	"github.com/docvault/docvault/internal/server/httpapi"
	"github.com/docvault/docvault/internal/server/shared/db"
	"github.com/docvault/docvault/internal/server/storage"
	"github.com/docvault/docvault/internal/server/users"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	manager         db.RepositoryManager
	userService     *users.Service
	documentService *documents.Service
}

func NewApp(cfg *config.Config) (*App, error) {

	if cfg.SecretKey == "" {
		return nil, errors.New("signing secret is not configured")
	}

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	manager, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(manager.Users(), cfg)
	ds := documents.NewService(manager.Documents(), storage.NewS3Uploader(cfg))

	return &App{
		config:          cfg,
		logger:          logger,
		manager:         manager,
		userService:     us,
		documentService: ds,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.documentService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
