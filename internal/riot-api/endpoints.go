package riotapi

import (
	"context"
	"net/url"
	"strconv"
)

const (
	RankedSoloQueue   = "RANKED_SOLO_5x5"
	RankedSoloQueueID = 420
)

// AccountEndpoint wraps account-v1. It routes to the regional cluster.
type AccountEndpoint struct {
	client *Client
	region string
}

func (c *Client) Accounts(region string) *AccountEndpoint {
	return &AccountEndpoint{client: c, region: AccountRoute(region)}
}

// ByRiotID fetches an account with the gameName and tagLine.
//   - gameName#tagLine
func (e *AccountEndpoint) ByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	req := NewRequest("riot/account/v1/accounts/by-riot-id/{gameName}/{tagLine}", e.region, map[string]string{
		"gameName": gameName,
		"tagLine":  tagLine,
	})

	var account Account
	if err := e.client.Do(ctx, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SummonerEndpoint wraps summoner-v4 on a platform.
type SummonerEndpoint struct {
	client *Client
	region string
}

func (c *Client) Summoners(region string) *SummonerEndpoint {
	return &SummonerEndpoint{client: c, region: region}
}

// ByName fetches a summoner by its legacy summoner name.
func (e *SummonerEndpoint) ByName(ctx context.Context, summonerName string) (*Summoner, error) {
	req := NewRequest("lol/summoner/v4/summoners/by-name/{summonerName}", e.region, map[string]string{
		"summonerName": summonerName,
	})

	var summoner Summoner
	if err := e.client.Do(ctx, req, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// ByPUUID fetches summoner data by their puuid.
func (e *SummonerEndpoint) ByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	req := NewRequest("lol/summoner/v4/summoners/by-puuid/{puuid}", e.region, map[string]string{
		"puuid": puuid,
	})

	var summoner Summoner
	if err := e.client.Do(ctx, req, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// LeagueEndpoint wraps league-v4 on a platform.
type LeagueEndpoint struct {
	client *Client
	region string
}

func (c *Client) Leagues(region string) *LeagueEndpoint {
	return &LeagueEndpoint{client: c, region: region}
}

// ByPUUID fetches every ranked entry of a player.
func (e *LeagueEndpoint) ByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	req := NewRequest("lol/league/v4/entries/by-puuid/{puuid}", e.region, map[string]string{
		"puuid": puuid,
	})

	var entries []LeagueEntry
	if err := e.client.Do(ctx, req, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SoloQueue returns the solo queue entry, or an UNRANKED placeholder when the
// player has no ranked solo entry.
func (e *LeagueEndpoint) SoloQueue(ctx context.Context, puuid string) (*LeagueEntry, error) {
	entries, err := e.ByPUUID(ctx, puuid)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.QueueType == RankedSoloQueue {
			return &entry, nil
		}
	}

	return &LeagueEntry{
		QueueType: RankedSoloQueue,
		Tier:      "UNRANKED",
	}, nil
}

// MatchFilter narrows a match id listing. Zero values are omitted.
type MatchFilter struct {
	Queue int
	Start int
	Count int
}

// MatchEndpoint wraps match-v5. It routes to the regional cluster.
type MatchEndpoint struct {
	client *Client
	region string
}

func (c *Client) Matches(region string) *MatchEndpoint {
	return &MatchEndpoint{client: c, region: RegionalRoute(region)}
}

// IDsByPUUID retrieves the latest match ids of a player, most recent first.
func (e *MatchEndpoint) IDsByPUUID(ctx context.Context, puuid string, filter MatchFilter) ([]string, error) {
	if filter.Count < 0 || filter.Count > 100 {
		return nil, &InvalidParameterError{Param: "count", Reason: "must be between 0 and 100"}
	}

	q := url.Values{}
	if filter.Queue > 0 {
		q.Set("queue", strconv.Itoa(filter.Queue))
	}
	if filter.Start > 0 {
		q.Set("start", strconv.Itoa(filter.Start))
	}
	if filter.Count > 0 {
		q.Set("count", strconv.Itoa(filter.Count))
	}

	req := NewRequest("lol/match/v5/matches/by-puuid/{puuid}/ids", e.region, map[string]string{
		"puuid": puuid,
	}).WithQuery(q)

	var ids []string
	if err := e.client.Do(ctx, req, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ByID fetches a full match.
func (e *MatchEndpoint) ByID(ctx context.Context, matchID string) (*Match, error) {
	req := NewRequest("lol/match/v5/matches/{matchId}", e.region, map[string]string{
		"matchId": matchID,
	})

	var match Match
	if err := e.client.Do(ctx, req, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
