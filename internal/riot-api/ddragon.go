package riotapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDDragonURL = "https://ddragon.leagueoflegends.com"
	DefaultCDragonURL = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default"

	// used when the versions feed cannot be reached
	fallbackVersion = "14.15.1"
)

// Champion is a DDragon champion entry. Key holds the numeric champion id as a string.
type Champion struct {
	ID   string   `json:"id"`
	Key  string   `json:"key"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Item is a CDragon item entry.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceTotal  int    `json:"priceTotal"`
	IconPath    string `json:"iconPath"`
}

// Perk is a CDragon rune entry.
type Perk struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IconPath string `json:"iconPath"`
}

// PerkStyle is a CDragon rune tree.
type PerkStyle struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IconPath string `json:"iconPath"`
}

// GameData bundles the static data needed to render matches.
type GameData struct {
	Version    string
	Champions  map[string]Champion
	Items      []Item
	Perks      []Perk
	PerkStyles []PerkStyle
}

// GameDataClient reads the versioned DDragon and CDragon feeds.
type GameDataClient struct {
	httpClient *http.Client
	throttle   *Throttle
	ddragonURL string
	cdragonURL string
	language   string
	logger     *logrus.Logger
}

type GameDataOption func(*GameDataClient)

// WithFeedURLs overrides the DDragon and CDragon base URLs.
func WithFeedURLs(ddragonURL, cdragonURL string) GameDataOption {
	return func(c *GameDataClient) {
		c.ddragonURL = strings.TrimRight(ddragonURL, "/")
		c.cdragonURL = strings.TrimRight(cdragonURL, "/")
	}
}

func WithGameDataLogger(l *logrus.Logger) GameDataOption {
	return func(c *GameDataClient) { c.logger = l }
}

func NewGameDataClient(opts ...GameDataOption) *GameDataClient {
	c := &GameDataClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		throttle:   NewThrottle(10, 10),
		ddragonURL: DefaultDDragonURL,
		cdragonURL: DefaultCDragonURL,
		language:   "en_US",
		logger:     logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CurrentVersion fetches the current DDragon version. On failure it returns a
// fallback version together with the error.
func (c *GameDataClient) CurrentVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := c.getJSON(ctx, c.ddragonURL+"/api/versions.json", &versions); err != nil {
		return fallbackVersion, fmt.Errorf("error fetching versions: %w. using default version", err)
	}
	if len(versions) == 0 {
		return fallbackVersion, fmt.Errorf("no versions found in the response. using default version")
	}
	return versions[0], nil
}

// Champions fetches the champion list for a version, keyed by champion id.
func (c *GameDataClient) Champions(ctx context.Context, version string) (map[string]Champion, error) {
	var payload struct {
		Data map[string]Champion `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.ddragonURL, version, c.language)
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (c *GameDataClient) Items(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, c.cdragonURL+"/v1/items.json", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *GameDataClient) Perks(ctx context.Context) ([]Perk, error) {
	var perks []Perk
	if err := c.getJSON(ctx, c.cdragonURL+"/v1/perks.json", &perks); err != nil {
		return nil, err
	}
	return perks, nil
}

func (c *GameDataClient) PerkStyles(ctx context.Context) ([]PerkStyle, error) {
	var payload struct {
		Styles []PerkStyle `json:"styles"`
	}
	if err := c.getJSON(ctx, c.cdragonURL+"/v1/perkstyles.json", &payload); err != nil {
		return nil, err
	}
	return payload.Styles, nil
}

// Load fetches the current version and then every feed concurrently.
func (c *GameDataClient) Load(ctx context.Context) (*GameData, error) {
	version, err := c.CurrentVersion(ctx)
	if err != nil {
		c.logger.Warnf("Warning: %v", err)
	}

	data := &GameData{Version: version}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Champions, err = c.Champions(gctx, version)
		return err
	})
	g.Go(func() (err error) {
		data.Items, err = c.Items(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Perks, err = c.Perks(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.PerkStyles, err = c.PerkStyles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error loading game data: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"version":   version,
		"champions": len(data.Champions),
		"items":     len(data.Items),
		"perks":     len(data.Perks),
	}).Info("Game data loaded")
	return data, nil
}

func (c *GameDataClient) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &UpstreamError{StatusCode: resp.StatusCode, URL: endpoint, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
