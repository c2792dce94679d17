package transformer

import (
	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

// TeamStats holds aggregate values of one team, required for detailed renders.
type TeamStats struct {
	Kills    int `json:"kills"`
	Gold     int `json:"gold"`
	DmgChamp int `json:"dmgChamp"`
	DmgObj   int `json:"dmgObj"`
	DmgTaken int `json:"dmgTaken"`
}

type ChampionView struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type ItemView struct {
	Image       string `json:"image"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type Stats struct {
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Assists  int    `json:"assists"`
	Minions  int    `json:"minions"`
	Vision   int    `json:"vision"`
	Gold     Figure `json:"gold"`
	DmgChamp Figure `json:"dmgChamp"`
	DmgObj   Figure `json:"dmgObj"`
	DmgTaken Figure `json:"dmgTaken"`
	KDA      Figure `json:"kda"`
	KP       Figure `json:"kp"`
}

// PercentStats are only computed for detailed renders.
type PercentStats struct {
	Minions  float64 `json:"minions"`
	Vision   float64 `json:"vision"`
	Gold     Figure  `json:"gold"`
	DmgChamp Figure  `json:"dmgChamp"`
	DmgObj   Figure  `json:"dmgObj"`
	DmgTaken Figure  `json:"dmgTaken"`
}

type PlayerView struct {
	Name          string        `json:"name"`
	PUUID         string        `json:"puuid"`
	TeamID        int           `json:"teamId"`
	Win           bool          `json:"win"`
	Champion      ChampionView  `json:"champion"`
	Role          string        `json:"role"`
	PrimaryRune   *string       `json:"primaryRune"`
	SecondaryRune *string       `json:"secondaryRune"`
	Level         int           `json:"level"`
	Items         [6]*ItemView  `json:"items"`
	FirstSum      int           `json:"firstSum"`
	SecondSum     int           `json:"secondSum"`
	Stats         Stats         `json:"stats"`
	PercentStats  *PercentStats `json:"percentStats,omitempty"`
}

// KDA returns "∞" when the player has takedowns and no deaths, 0 when the
// player has nothing at all, and (kills+assists)/deaths otherwise.
func KDA(kills, deaths, assists int) Figure {
	if kills+assists != 0 && deaths == 0 {
		return Figure{Infinite: true}
	}
	if deaths == 0 {
		return Number(0)
	}
	return Number(round(float64(kills+assists)/float64(deaths), 2))
}

// Render builds the display record of one player. teamStats is mandatory when
// detailed is true. The inputs are never modified.
func Render(match *riotapi.Match, player *riotapi.Participant, c *Context, detailed bool, teamStats *TeamStats) (*PlayerView, error) {
	if detailed && teamStats == nil {
		return nil, &riotapi.InvalidParameterError{Param: "teamStats", Reason: "required for detailed stats"}
	}

	champion, err := c.champion(player.ChampionID)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		Kills:    player.Kills,
		Deaths:   player.Deaths,
		Assists:  player.Assists,
		Minions:  player.TotalMinionsKilled + player.NeutralMinionsKilled,
		Vision:   player.VisionScore,
		Gold:     thousands(player.GoldEarned),
		DmgChamp: thousands(player.TotalDamageDealtToChampions),
		DmgObj:   thousands(player.DamageDealtToObjectives),
		DmgTaken: thousands(player.TotalDamageTaken),
		KDA:      KDA(player.Kills, player.Deaths, player.Assists),
	}

	takedowns := player.Kills + player.Assists
	var percentStats *PercentStats
	if detailed {
		duration := match.Info.GameDuration
		percentStats = &PercentStats{
			Minions:  perMinute(stats.Minions, duration),
			Vision:   perMinute(stats.Vision, duration),
			Gold:     share(player.GoldEarned, teamStats.Gold),
			DmgChamp: share(player.TotalDamageDealtToChampions, teamStats.DmgChamp),
			DmgObj:   share(player.DamageDealtToObjectives, teamStats.DmgObj),
			DmgTaken: share(player.TotalDamageTaken, teamStats.DmgTaken),
		}
		stats.KP = share(takedowns, teamStats.Kills)
	} else {
		teamKills := TeamTotals(match, player.TeamID).Kills
		if teamKills == 0 {
			stats.KP = Number(0)
		} else {
			stats.KP = Number(round(float64(takedowns)*100/float64(teamKills), 1))
		}
	}

	primaryRune, secondaryRune, err := runes(player, c)
	if err != nil {
		return nil, err
	}

	var items [6]*ItemView
	for i, id := range player.ItemSlots() {
		if id == 0 {
			continue
		}
		item, err := c.item(id)
		if err != nil {
			return nil, err
		}
		items[i] = &ItemView{
			Image:       IconURL(item.IconPath),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.PriceTotal,
		}
	}

	return &PlayerView{
		Name:   player.DisplayName(),
		PUUID:  player.PUUID,
		TeamID: player.TeamID,
		Win:    player.Win,
		Champion: ChampionView{
			ID:   champion.ID,
			Name: champion.Name,
			Tags: append([]string(nil), champion.Tags...),
		},
		Role:          RoleName(player.Lane, player.Role),
		PrimaryRune:   primaryRune,
		SecondaryRune: secondaryRune,
		Level:         player.ChampLevel,
		Items:         items,
		FirstSum:      player.Summoner1ID,
		SecondSum:     player.Summoner2ID,
		Stats:         stats,
		PercentStats:  percentStats,
	}, nil
}

// runes resolves the keystone of the primary tree and the icon of the secondary tree.
func runes(player *riotapi.Participant, c *Context) (*string, *string, error) {
	styles := player.Perks.Styles
	if len(styles) == 0 || styles[0].Style == 0 || len(styles[0].Selections) == 0 {
		return nil, nil, nil
	}

	keystone, err := c.perk(styles[0].Selections[0].Perk)
	if err != nil {
		return nil, nil, err
	}
	primary := IconURL(keystone.IconPath)

	if len(styles) < 2 {
		return &primary, nil, nil
	}
	subStyle, err := c.perkStyle(styles[1].Style)
	if err != nil {
		return nil, nil, err
	}
	secondary := IconURL(subStyle.IconPath)

	return &primary, &secondary, nil
}
