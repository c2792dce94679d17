package transformer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

// CDragonAssetURL is prefixed to every lower-cased icon path.
const CDragonAssetURL = "https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/"

// ErrMissingStaticData is returned when a match references an id that is not
// present in the loaded game data.
var ErrMissingStaticData = errors.New("missing static game data")

// Context holds indexed static game data. It is read-only once built and can
// be shared between goroutines.
type Context struct {
	Version    string
	champions  map[int]riotapi.Champion
	items      map[int]riotapi.Item
	perks      map[int]riotapi.Perk
	perkStyles map[int]riotapi.PerkStyle
}

// Load indexes raw game data by numeric id.
func Load(data *riotapi.GameData) (*Context, error) {
	if data == nil {
		return nil, fmt.Errorf("game data is nil")
	}

	c := &Context{
		Version:    data.Version,
		champions:  make(map[int]riotapi.Champion, len(data.Champions)),
		items:      make(map[int]riotapi.Item, len(data.Items)),
		perks:      make(map[int]riotapi.Perk, len(data.Perks)),
		perkStyles: make(map[int]riotapi.PerkStyle, len(data.PerkStyles)),
	}

	for name, champion := range data.Champions {
		key, err := strconv.Atoi(champion.Key)
		if err != nil {
			return nil, fmt.Errorf("champion %s has a malformed key %q: %w", name, champion.Key, err)
		}
		c.champions[key] = champion
	}
	for _, item := range data.Items {
		c.items[item.ID] = item
	}
	for _, perk := range data.Perks {
		c.perks[perk.ID] = perk
	}
	for _, style := range data.PerkStyles {
		c.perkStyles[style.ID] = style
	}

	return c, nil
}

func (c *Context) champion(id int) (riotapi.Champion, error) {
	champion, ok := c.champions[id]
	if !ok {
		return riotapi.Champion{}, fmt.Errorf("champion %d: %w", id, ErrMissingStaticData)
	}
	return champion, nil
}

func (c *Context) item(id int) (riotapi.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return riotapi.Item{}, fmt.Errorf("item %d: %w", id, ErrMissingStaticData)
	}
	return item, nil
}

func (c *Context) perk(id int) (riotapi.Perk, error) {
	perk, ok := c.perks[id]
	if !ok {
		return riotapi.Perk{}, fmt.Errorf("perk %d: %w", id, ErrMissingStaticData)
	}
	return perk, nil
}

func (c *Context) perkStyle(id int) (riotapi.PerkStyle, error) {
	style, ok := c.perkStyles[id]
	if !ok {
		return riotapi.PerkStyle{}, fmt.Errorf("perk style %d: %w", id, ErrMissingStaticData)
	}
	return style, nil
}

// IconURL turns a CDragon iconPath such as
// "/lol-game-data/assets/ASSETS/Items/Icons2D/1001_Class_T1_BootsofSpeed.png"
// into a CDN URL.
func IconURL(iconPath string) string {
	rest := iconPath
	if _, after, found := strings.Cut(iconPath, "/assets/"); found {
		rest = after
	}
	return CDragonAssetURL + strings.ToLower(strings.TrimLeft(rest, "/"))
}
