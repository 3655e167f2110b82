package main

import (
	"context"
	"os"
	"os/signal"

	"cardtable/internal/config"
	"cardtable/internal/console"
	"cardtable/internal/count"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	counter, err := count.New(cfg.CounterDecks)
	if err != nil {
		logger.Fatalf("Failed to create counter: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := console.New(counter, logger).Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Fatalf("Counter error: %v", err)
	}
}
