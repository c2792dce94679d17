package transformer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
)

func testGameData() *riotapi.GameData {
	return &riotapi.GameData{
		Version: "14.20.1",
		Champions: map[string]riotapi.Champion{
			"Garen":  {ID: "Garen", Key: "86", Name: "Garen", Tags: []string{"Fighter", "Tank"}},
			"Lux":    {ID: "Lux", Key: "99", Name: "Lux", Tags: []string{"Mage", "Support"}},
			"LeeSin": {ID: "LeeSin", Key: "64", Name: "Lee Sin", Tags: []string{"Fighter", "Assassin"}},
			"Ahri":   {ID: "Ahri", Key: "103", Name: "Ahri", Tags: []string{"Mage", "Assassin"}},
			"Jinx":   {ID: "Jinx", Key: "222", Name: "Jinx", Tags: []string{"Marksman"}},
		},
		Items: []riotapi.Item{
			{ID: 1001, Name: "Boots", Description: "Slightly increases Move Speed", PriceTotal: 300,
				IconPath: "/lol-game-data/assets/ASSETS/Items/Icons2D/1001_Class_T1_BootsofSpeed.png"},
			{ID: 3089, Name: "Rabadon's Deathcap", PriceTotal: 3600,
				IconPath: "/lol-game-data/assets/ASSETS/Items/Icons2D/3089_Mage_T3_RabadonsDeathcap.png"},
		},
		Perks: []riotapi.Perk{
			{ID: 8112, Name: "Electrocute", IconPath: "/lol-game-data/assets/v1/perk-images/Styles/Domination/Electrocute/Electrocute.png"},
		},
		PerkStyles: []riotapi.PerkStyle{
			{ID: 8100, Name: "Domination", IconPath: "/lol-game-data/assets/v1/perk-images/Styles/7200_Domination.png"},
			{ID: 8200, Name: "Sorcery", IconPath: "/lol-game-data/assets/v1/perk-images/Styles/7202_Sorcery.png"},
		},
	}
}

func testContext(t *testing.T) *Context {
	t.Helper()
	c, err := Load(testGameData())
	require.NoError(t, err)
	return c
}

const testMatchJSON = `{
  "metadata": {"matchId": "EUW1_7000000001", "participants": ["p1","p2","p3","p4","p5"]},
  "info": {
    "gameCreation": 1719835200000,
    "gameDuration": 1800,
    "mapId": 11,
    "queueId": 420,
    "participants": [
      {
        "puuid": "p1", "riotIdGameName": "Top Player", "summonerName": "legacy", "teamId": 100,
        "championId": 86, "champLevel": 17, "kills": 5, "deaths": 0, "assists": 3,
        "totalMinionsKilled": 200, "neutralMinionsKilled": 10, "visionScore": 15,
        "goldEarned": 12345, "totalDamageDealtToChampions": 20000,
        "damageDealtToObjectives": 5000, "totalDamageTaken": 30000,
        "item0": 1001, "item1": 0, "item2": 3089, "item3": 0, "item4": 0, "item5": 0, "item6": 3340,
        "summoner1Id": 4, "summoner2Id": 12, "lane": "TOP", "role": "SOLO", "win": true,
        "perks": {"styles": [
          {"description": "primaryStyle", "style": 8100, "selections": [{"perk": 8112}]},
          {"description": "subStyle", "style": 8200, "selections": []}
        ]}
      },
      {
        "puuid": "p2", "summonerName": "Support Player", "teamId": 100,
        "championId": 99, "kills": 1, "deaths": 2, "assists": 10,
        "goldEarned": 8000, "totalDamageDealtToChampions": 10000,
        "damageDealtToObjectives": 1000, "totalDamageTaken": 10000,
        "lane": "BOTTOM", "role": "DUO_SUPPORT", "win": true
      },
      {
        "puuid": "p3", "summonerName": "Jungle Player", "teamId": 100,
        "championId": 64, "kills": 2, "deaths": 3, "assists": 4,
        "goldEarned": 10000, "totalDamageDealtToChampions": 10000,
        "damageDealtToObjectives": 14000, "totalDamageTaken": 20000,
        "lane": "JUNGLE", "role": "NONE", "win": true
      },
      {
        "puuid": "p4", "summonerName": "Mid Player", "teamId": 200,
        "championId": 103, "kills": 4, "deaths": 3, "assists": 2,
        "goldEarned": 11000, "totalDamageDealtToChampions": 25000,
        "lane": "MIDDLE", "role": "SOLO", "win": false
      },
      {
        "puuid": "p5", "summonerName": "Afk Player", "teamId": 200,
        "championId": 222, "kills": 0, "deaths": 5, "assists": 0,
        "lane": "NONE", "role": "NONE", "win": false
      }
    ]
  }
}`

func testMatch(t *testing.T) *riotapi.Match {
	t.Helper()
	var match riotapi.Match
	require.NoError(t, json.Unmarshal([]byte(testMatchJSON), &match))
	return &match
}

func participant(t *testing.T, match *riotapi.Match, puuid string) *riotapi.Participant {
	t.Helper()
	p, ok := match.FindParticipant(puuid)
	require.True(t, ok)
	return p
}
