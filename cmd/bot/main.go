package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tristan-derez/league-stats/internal/app"
	"github.com/tristan-derez/league-stats/internal/bot"
	"github.com/tristan-derez/league-stats/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	b, err := bot.New(cfg, a.Service, logger)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Open(); err != nil {
		logger.Fatalf("Failed to open Discord session: %v", err)
	}

	<-ctx.Done()

	if err := b.Shutdown(); err != nil {
		logger.WithError(err).Error("Bot stopped with an error")
	}
}
