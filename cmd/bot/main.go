package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/MaximMukhametov/assign-bot/internal/config"
	"github.com/MaximMukhametov/assign-bot/internal/wire"
)

var cli struct {
	TelegramToken string   `env:"TELEGRAM_TOKEN" required:"" help:"Telegram Bot API token."`
	Listen        string   `env:"LISTEN" default:":8080" help:"Ops HTTP server listen address."`
	AdminIDs      []int64  `env:"ADMIN_IDS" help:"Telegram user ids allowed to drive the bot (empty = open)."`
	DefaultRoster []string `env:"DEFAULT_ROSTER" help:"Fallback participant list for unconfigured chats."`
	WebhookOnly   bool     `env:"WEBHOOK_ONLY" help:"Disable long polling; receive updates via webhook only."`
	Debug         bool     `env:"DEBUG" help:"Log at debug level."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("assign-bot"),
		kong.Description("Chat-based task-assignment assistant."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := wire.Build(ctx, config.Config{
		TelegramToken: cli.TelegramToken,
		Listen:        cli.Listen,
		AdminIDs:      cli.AdminIDs,
		DefaultRoster: cli.DefaultRoster,
		WebhookOnly:   cli.WebhookOnly,
	})
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 2)
	go func() {
		slog.Info("ops HTTP server listening", "addr", app.Server.Addr)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if !cli.WebhookOnly {
		go func() {
			slog.Info("starting Telegram long polling")
			if err := app.Client.Poll(ctx, app.Bot); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		slog.Error("runtime error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("assign-bot stopped")
}
