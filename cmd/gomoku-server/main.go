package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/thekrainbow/gomoku/internal/config"
	"github.com/thekrainbow/gomoku/internal/logging"
	"github.com/thekrainbow/gomoku/internal/opponent"
	"github.com/thekrainbow/gomoku/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML/JSON/TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Must(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	kind, err := opponent.ParseKind(cfg.Opponent.Kind)
	if err != nil {
		return err
	}
	srv := server.New(server.Options{
		Engine:       cfg.EngineConfig(),
		Opponent:     kind,
		Seed:         cfg.Opponent.Seed,
		PingInterval: cfg.Server.PingInterval,
	}, logger.Named("server"))

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("opponent", string(kind)), zap.Int("depth", cfg.Engine.Depth))
	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = fmt.Errorf("listen: %w", err)
		}
	}

	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Warn("forced close failed", zap.Error(closeErr))
		}
	}
	return runErr
}
