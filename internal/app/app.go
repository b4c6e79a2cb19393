// Package app wires the gateway together: config, logger, database with
// migrations, node client, services, and the HTTP server, plus graceful
// shutdown on OS signals.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hobbleabbas/bapu-gateway/internal/config"
	"github.com/hobbleabbas/bapu-gateway/internal/errorlog"
	"github.com/hobbleabbas/bapu-gateway/internal/httpapi"
	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/node"
	"github.com/hobbleabbas/bapu-gateway/internal/repositories/repomanager"
	"github.com/hobbleabbas/bapu-gateway/internal/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	nodeClient := node.New(node.Config{
		URL:      cfg.NodeURL,
		User:     cfg.NodeUser,
		Password: cfg.NodePassword,
		Timeout:  cfg.NodeTimeout,
	})

	userService := services.NewUserService(rm.Users(db), cfg.SecretKey, cfg.AccessTokenValidity, logger)
	walletService := services.NewWalletService(nodeClient, rm.Wallets(db), logger)
	transactionService := services.NewTransactionService(nodeClient, logger)

	failures := errorlog.NewRecorder(cfg.ErrorLogPath)

	server := httpapi.NewServer(cfg.Address, userService, walletService,
		transactionService, failures, logger)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "address", app.config.Address)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "app stopped")
}
