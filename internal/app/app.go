// Package app wires the Riot client, the static data and the optional
// storage into a service, shared by the HTTP server and the Discord bot.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tristan-derez/league-stats/internal/config"
	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
	"github.com/tristan-derez/league-stats/internal/storage"
)

type App struct {
	Riot    *riotapi.Client
	Service *service.Service
	Storage *storage.Storage
}

// New builds the dependencies. Storage is only opened when DB_HOST is set.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	riot := riotapi.NewClient(cfg.RiotAPIKey, cfg.RiotAPIRegion,
		riotapi.WithLogger(logger),
		riotapi.WithBudget(cfg.RiotRateLimit, cfg.RiotRateWindow),
	)
	gameData := riotapi.NewGameDataClient(riotapi.WithGameDataLogger(logger))

	deps := service.Deps{
		Riot:     riot,
		Contexts: service.NewContextProvider(gameData),
		Logger:   logger,
	}

	a := &App{Riot: riot}

	if cfg.StorageEnabled() {
		if err := cfg.RequireStorage(); err != nil {
			riot.Close()
			return nil, err
		}
		store, err := storage.New(ctx, cfg, logger)
		if err != nil {
			riot.Close()
			return nil, fmt.Errorf("error opening storage: %w", err)
		}
		a.Storage = store
		deps.History = store
	} else {
		logger.Info("DB_HOST not set, match history is disabled")
	}

	a.Service = service.New(deps)
	return a, nil
}

// Close releases the storage and stops the limiter timers.
func (a *App) Close() error {
	a.Riot.Close()
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
