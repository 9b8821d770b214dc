package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"notesbot/internal/bot"
	"notesbot/internal/config"
	"notesbot/internal/db"
	"notesbot/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	store := db.NewStore(database)
	sessions := session.NewStore(cfg.SessionTTL)

	b, err := bot.New(cfg.BotToken, store, sessions, logger)
	if err != nil {
		logger.Error("create bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunEviction(ctx, cfg.SessionTTL/2)

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}
