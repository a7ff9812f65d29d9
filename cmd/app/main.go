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

	"cargo/cmd"
	httpadapter "cargo/internal/adapters/in/http"
	"cargo/internal/adapters/out/postgres"
	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/logging"

	"github.com/labstack/gommon/log"
)

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := logging.New(config.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		log.Fatalf("cargo: %v", err)
	}
}

func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, postgres.DBConfig{
		Driver: config.DBDriver,
		DSN:    config.DSN(),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			logger.Error("close database", "error", err)
		}
	}()

	if config.DBAutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			return err
		}
	}

	app, err := cmd.NewCompositionRoot(config, db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close ledger publisher", "error", err)
		}
	}()

	if config.BootstrapAdminEnabled() {
		if err := bootstrapAdmin(ctx, app, config, logger); err != nil {
			return err
		}
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, config, logger)
}

func bootstrapAdmin(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	register, err := commands.NewRegisterUserCommand(
		kernel.NewUUID(), config.AdminFullName, config.AdminEmail, config.AdminPhone, config.AdminPassword,
	)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	bootstrapCmd, err := commands.NewBootstrapAdminCommand(register)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	handler := app.CreateBootstrapAdminCommandHandler()
	admin, created, err := handler.Handle(ctx, bootstrapCmd)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.InfoContext(ctx, "Super admin account ready", "userId", admin.ID().String(), "created", created)
	return nil
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), app.TokenIssuer(), logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
