package transformer

import (
	"sort"
	"strings"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

var roleOrder = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "SUPPORT"}

type GameInfo struct {
	Map      int   `json:"map"`
	Gamemode int   `json:"gamemode"`
	Date     int64 `json:"date"`
	Time     int   `json:"time"`
}

type TeamView struct {
	TeamID  int           `json:"teamId"`
	Win     bool          `json:"win"`
	Totals  TeamStats     `json:"totals"`
	Players []*PlayerView `json:"players"`
}

type MatchView struct {
	MatchID string     `json:"matchId"`
	Infos   GameInfo   `json:"infos"`
	Teams   []TeamView `json:"teams"`
}

// GameInfos returns global data about the match.
func GameInfos(match *riotapi.Match) GameInfo {
	return GameInfo{
		Map:      match.Info.MapID,
		Gamemode: match.Info.QueueID,
		Date:     match.Info.GameCreation,
		Time:     match.Info.GameDuration,
	}
}

// RoleName returns the lane of a player, reporting bot lane supports as SUPPORT.
func RoleName(lane, role string) string {
	if lane == "BOTTOM" && strings.Contains(role, "SUPPORT") {
		return "SUPPORT"
	}
	return lane
}

// SortTeamByRole orders players TOP, JUNGLE, MIDDLE, BOTTOM, SUPPORT.
// Unknown roles come first and keep their relative order.
func SortTeamByRole(players []*PlayerView) {
	sort.SliceStable(players, func(i, j int) bool {
		return roleIndex(players[i].Role) < roleIndex(players[j].Role)
	})
}

func roleIndex(role string) int {
	for i, r := range roleOrder {
		if r == role {
			return i
		}
	}
	return -1
}

// TeamTotals sums the stats of every participant of a team.
func TeamTotals(match *riotapi.Match, teamID int) TeamStats {
	var totals TeamStats
	for _, p := range match.Info.Participants {
		if p.TeamID != teamID {
			continue
		}
		totals.Kills += p.Kills
		totals.Gold += p.GoldEarned
		totals.DmgChamp += p.TotalDamageDealtToChampions
		totals.DmgObj += p.DamageDealtToObjectives
		totals.DmgTaken += p.TotalDamageTaken
	}
	return totals
}

// RenderMatch renders every participant, grouped by team and sorted by role.
func RenderMatch(match *riotapi.Match, c *Context, detailed bool) (*MatchView, error) {
	view := &MatchView{
		MatchID: match.Metadata.MatchID,
		Infos:   GameInfos(match),
	}

	teamIndex := make(map[int]int)
	for i := range match.Info.Participants {
		player := &match.Info.Participants[i]

		idx, ok := teamIndex[player.TeamID]
		if !ok {
			idx = len(view.Teams)
			teamIndex[player.TeamID] = idx
			view.Teams = append(view.Teams, TeamView{
				TeamID: player.TeamID,
				Win:    player.Win,
				Totals: TeamTotals(match, player.TeamID),
			})
		}

		var teamStats *TeamStats
		if detailed {
			totals := view.Teams[idx].Totals
			teamStats = &totals
		}
		rendered, err := Render(match, player, c, detailed, teamStats)
		if err != nil {
			return nil, err
		}
		view.Teams[idx].Players = append(view.Teams[idx].Players, rendered)
	}

	sort.SliceStable(view.Teams, func(i, j int) bool {
		return view.Teams[i].TeamID < view.Teams[j].TeamID
	})
	for i := range view.Teams {
		SortTeamByRole(view.Teams[i].Players)
	}
	return view, nil
}
