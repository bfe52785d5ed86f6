// The serve command: run the HTTP API over the SQLite store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/httpapi"
	"github.com/mesh-intelligence/todos/internal/sqlite"
	"github.com/mesh-intelligence/todos/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the todos HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cfg.LogLevel)

		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		log.Info("store opened",
			"data_dir", cfg.DataDir,
			"step_capability", store.Capabilities().Step)

		notifier := webhook.New(cfg.WebhookURL, log)
		srv := httpapi.New(store, notifier, log, cfg.Production)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("http server listening", "addr", cfg.ListenAddr)
			errCh <- srv.Listen(cfg.ListenAddr)
		}()

		select {
		case <-ctx.Done():
			log.Info("shutdown requested")
			if err := srv.Shutdown(); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}
	},
}

// newLogger builds a slog text logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
