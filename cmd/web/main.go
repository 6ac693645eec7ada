package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/database"
	"github.com/tomuthu-engineer/moibook/internal/logger"
	"github.com/tomuthu-engineer/moibook/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("moibook web stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateWeb(); err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	go database.RunCleanup(ctx, db, cfg.Session.CleanupInterval)

	srv := server.NewServer(cfg, db)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
