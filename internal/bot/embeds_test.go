package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
	"github.com/tristan-derez/league-stats/internal/transformer"
)

func TestParseRiotID(t *testing.T) {
	name, tag, err := parseRiotID("  Blue Side # EUW ")
	require.NoError(t, err)
	assert.Equal(t, "Blue Side", name)
	assert.Equal(t, "EUW", tag)

	for _, raw := range []string{"", "NoTag", "#EUW", "Name#", "  #  "} {
		_, _, err := parseRiotID(raw)
		assert.ErrorIs(t, err, errInvalidRiotID, raw)
	}
}

func TestProfileEmbed(t *testing.T) {
	embed := profileEmbed(&service.Profile{
		Summoner: riotapi.Summoner{Name: "Blue#EUW", SummonerLevel: 120},
		Rank:     riotapi.LeagueEntry{Tier: "GOLD", Rank: "II", LeaguePoints: 54, Wins: 10, Losses: 8},
		WinRate:  55.6,
	})

	assert.Equal(t, "Blue#EUW", embed.Title)
	assert.Equal(t, "Level 120 • Gold II (54 LP)", embed.Description)
	assert.Equal(t, 0xFFD700, embed.Color)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "55.6%", embed.Fields[2].Value)
}

func testPlayerMatch(win bool, duration int) *service.PlayerMatch {
	return &service.PlayerMatch{
		MatchID: "EUW1_42",
		Infos:   transformer.GameInfo{Map: 11, Gamemode: 420, Date: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC).UnixMilli(), Time: duration},
		Player: &transformer.PlayerView{
			Name:     "Blue",
			Win:      win,
			Champion: transformer.ChampionView{ID: "MonkeyKing", Name: "Wukong"},
			Stats: transformer.Stats{
				Kills: 7, Deaths: 0, Assists: 5, Minions: 180,
				Gold:     transformer.Suffixed(11.2, "k"),
				DmgChamp: transformer.Suffixed(23.4, "k"),
				KDA:      transformer.KDA(7, 0, 5),
				KP:       transformer.Number(60),
			},
		},
	}
}

func TestMatchEmbed(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	embed := matchEmbed("Blue#EUW", testPlayerMatch(true, 1505), "14.20.1", now)

	assert.Equal(t, "Blue#EUW • Victory", embed.Title)
	assert.Equal(t, colorWin, embed.Color)
	require.NotNil(t, embed.Thumbnail)
	assert.Equal(t, "https://ddragon.leagueoflegends.com/cdn/14.20.1/img/champion/MonkeyKing.png", embed.Thumbnail.URL)
	assert.Equal(t, "**7/0/5** with **Wukong** (25:05) • ∞ KDA and 60% KP", embed.Description)
	assert.Equal(t, "11.2k", embed.Fields[1].Value)
	assert.Equal(t, "EUW1_42 • Jul 1 at 9:30 AM", embed.Footer.Text)
}

func TestMatchEmbedColors(t *testing.T) {
	now := time.Now()
	assert.Equal(t, colorLoss, matchEmbed("x", testPlayerMatch(false, 1800), "v", now).Color)
	assert.Equal(t, colorRemake, matchEmbed("x", testPlayerMatch(true, 200), "v", now).Color)
	assert.Nil(t, matchEmbed("x", testPlayerMatch(true, 1800), "", now).Thumbnail)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Unable to find summoner.", userMessage(&riotapi.UpstreamError{StatusCode: 404}))
	assert.Contains(t, userMessage(&riotapi.RateLimitExceededError{}), "busy")
	assert.Contains(t, userMessage(fmt.Errorf("wrapped: %w", service.ErrNoRecentMatch)), "No recent")
	assert.Contains(t, userMessage(fmt.Errorf("boom")), "boom")
}
