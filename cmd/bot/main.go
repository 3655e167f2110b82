package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cardtable/internal/bot"
	"cardtable/internal/config"
	"cardtable/internal/database"
	"cardtable/internal/player"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.WithField("path", cfg.DatabasePath).Info("database connected")

	playerRepo := player.NewRepository(db.DB)

	b, err := bot.New(cfg, playerRepo, logger)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil {
		logger.Fatalf("Bot error: %v", err)
	}
}
