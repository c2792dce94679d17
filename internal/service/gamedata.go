package service

import (
	"context"
	"sync"
	"time"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/transformer"
)

// GameDataLoader fetches raw static data. *riotapi.GameDataClient implements it.
type GameDataLoader interface {
	Load(ctx context.Context) (*riotapi.GameData, error)
}

const minRefreshInterval = time.Minute

// ContextProvider loads the transformer context on first use and keeps it
// until Refresh is called. A failed load is retried on the next call.
type ContextProvider struct {
	loader GameDataLoader
	now    func() time.Time

	mu          sync.Mutex
	current     *transformer.Context
	refreshedAt time.Time
}

func NewContextProvider(loader GameDataLoader) *ContextProvider {
	return &ContextProvider{loader: loader, now: time.Now}
}

// Get returns the loaded context, loading it if needed.
func (p *ContextProvider) Get(ctx context.Context) (*transformer.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		return p.current, nil
	}
	return p.load(ctx)
}

// Refresh reloads the static data, for example after a game patch.
// At most one reload per minRefreshInterval reaches the loader; calls in
// between return the current context.
func (p *ContextProvider) Refresh(ctx context.Context) (*transformer.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.current != nil && !p.refreshedAt.IsZero() && now.Sub(p.refreshedAt) < minRefreshInterval {
		return p.current, nil
	}
	p.refreshedAt = now
	return p.load(ctx)
}

func (p *ContextProvider) load(ctx context.Context) (*transformer.Context, error) {
	data, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	loaded, err := transformer.Load(data)
	if err != nil {
		return nil, err
	}
	p.current = loaded
	return loaded, nil
}
