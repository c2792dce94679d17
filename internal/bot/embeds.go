package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	dg "github.com/bwmarrin/discordgo"

	"github.com/tristan-derez/league-stats/internal/service"
	"github.com/tristan-derez/league-stats/internal/utils"
)

const (
	colorWin     = 0x00FF00
	colorLoss    = 0xFF0000
	colorRemake  = 0x808080
	remakeLength = 240
)

var errInvalidRiotID = errors.New("riot id must look like Name#Tag")

// parseRiotID splits "Name#Tag" into its two parts.
func parseRiotID(raw string) (string, string, error) {
	gameName, tagLine, found := strings.Cut(strings.TrimSpace(raw), "#")
	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimSpace(tagLine)
	if !found || gameName == "" || tagLine == "" {
		return "", "", errInvalidRiotID
	}
	return gameName, tagLine, nil
}

func championImageURL(version, championID string) string {
	return fmt.Sprintf("https://ddragon.leagueoflegends.com/cdn/%s/img/champion/%s.png", version, championID)
}

func profileEmbed(p *service.Profile) *dg.MessageEmbed {
	return &dg.MessageEmbed{
		Title:       p.Summoner.Name,
		Description: fmt.Sprintf("Level %d • %s", p.Summoner.SummonerLevel, utils.FormatRank(p.Rank.Tier, p.Rank.Rank, p.Rank.LeaguePoints)),
		Color:       utils.GetRankColor(p.Rank.Tier),
		Fields: []*dg.MessageEmbedField{
			{Name: "Wins", Value: fmt.Sprintf("%d", p.Rank.Wins), Inline: true},
			{Name: "Losses", Value: fmt.Sprintf("%d", p.Rank.Losses), Inline: true},
			{Name: "Win Rate", Value: fmt.Sprintf("%.1f%%", p.WinRate), Inline: true},
		},
	}
}

func matchEmbed(riotID string, m *service.PlayerMatch, version string, now time.Time) *dg.MessageEmbed {
	player := m.Player
	stats := player.Stats

	color := colorLoss
	switch {
	case m.Infos.Time < remakeLength:
		color = colorRemake
	case player.Win:
		color = colorWin
	}

	result := "Defeat"
	if player.Win {
		result = "Victory"
	}

	summary := fmt.Sprintf("**%d/%d/%d** with **%s** (%s) • %s KDA and %s%% KP",
		stats.Kills, stats.Deaths, stats.Assists, player.Champion.Name,
		utils.FormatDuration(m.Infos.Time), stats.KDA, stats.KP)

	embed := &dg.MessageEmbed{
		Title:       fmt.Sprintf("%s • %s", riotID, result),
		Description: summary,
		Color:       color,
		Fields: []*dg.MessageEmbedField{
			{Name: "CS", Value: fmt.Sprintf("%d", stats.Minions), Inline: true},
			{Name: "Gold", Value: stats.Gold.String(), Inline: true},
			{Name: "Damage", Value: stats.DmgChamp.String(), Inline: true},
		},
		Footer: &dg.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • %s", m.MatchID, utils.FormatGameDate(m.Infos.Date, now)),
		},
	}
	if version != "" {
		embed.Thumbnail = &dg.MessageEmbedThumbnail{URL: championImageURL(version, player.Champion.ID)}
	}
	return embed
}
