package riotapi

type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	RiotSummonerID string `json:"id"`
	RiotAccountID  string `json:"accountId"`
	SummonerPUUID  string `json:"puuid"`
	Name           string `json:"name,omitempty"`
	ProfileIconID  int    `json:"profileIconId"`
	RevisionDate   int64  `json:"revisionDate"`
	SummonerLevel  int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

// Match is a match-v5 payload.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation     int64         `json:"gameCreation"`
	GameDuration     int           `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	GameID           int64         `json:"gameId"`
	GameMode         string        `json:"gameMode"`
	GameType         string        `json:"gameType"`
	GameVersion      string        `json:"gameVersion"`
	MapID            int           `json:"mapId"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
}

type Participant struct {
	ParticipantID               int    `json:"participantId"`
	PUUID                       string `json:"puuid"`
	SummonerName                string `json:"summonerName"`
	RiotIDGameName              string `json:"riotIdGameName"`
	RiotIDTagline               string `json:"riotIdTagline"`
	TeamID                      int    `json:"teamId"`
	ChampionID                  int    `json:"championId"`
	ChampionName                string `json:"championName"`
	ChampLevel                  int    `json:"champLevel"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	VisionScore                 int    `json:"visionScore"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	DamageDealtToObjectives     int    `json:"damageDealtToObjectives"`
	TotalDamageTaken            int    `json:"totalDamageTaken"`
	Item0                       int    `json:"item0"`
	Item1                       int    `json:"item1"`
	Item2                       int    `json:"item2"`
	Item3                       int    `json:"item3"`
	Item4                       int    `json:"item4"`
	Item5                       int    `json:"item5"`
	Item6                       int    `json:"item6"`
	Summoner1ID                 int    `json:"summoner1Id"`
	Summoner2ID                 int    `json:"summoner2Id"`
	Lane                        string `json:"lane"`
	Role                        string `json:"role"`
	TeamPosition                string `json:"teamPosition"`
	PentaKills                  int    `json:"pentaKills"`
	Win                         bool   `json:"win"`
	Perks                       Perks  `json:"perks"`
}

type Perks struct {
	Styles []PerkStyleSelection `json:"styles"`
}

type PerkStyleSelection struct {
	Description string `json:"description"`
	Style       int    `json:"style"`
	Selections  []struct {
		Perk int `json:"perk"`
	} `json:"selections"`
}

// ItemSlots returns the six inventory slots in order. The trinket (item6) is not included.
func (p Participant) ItemSlots() [6]int {
	return [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

// DisplayName prefers the Riot ID over the legacy summoner name.
func (p Participant) DisplayName() string {
	if p.RiotIDGameName != "" {
		return p.RiotIDGameName
	}
	return p.SummonerName
}

// FindParticipant searches for a participant in a match by their PUUID.
func (m *Match) FindParticipant(puuid string) (*Participant, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}
