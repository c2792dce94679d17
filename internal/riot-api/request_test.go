package riotapi

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestURL(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		wantErr string
	}{
		{
			name: "platform route",
			req:  NewRequest("lol/summoner/v4/summoners/by-name/{summonerName}", "euw1", map[string]string{"summonerName": "Faker"}),
			want: "https://euw1.api.riotgames.com/lol/summoner/v4/summoners/by-name/Faker",
		},
		{
			name: "escapes path values",
			req:  NewRequest("riot/account/v1/accounts/by-riot-id/{gameName}/{tagLine}", "europe", map[string]string{"gameName": "a b/c", "tagLine": "EUW"}),
			want: "https://europe.api.riotgames.com/riot/account/v1/accounts/by-riot-id/a%20b%2Fc/EUW",
		},
		{
			name: "query string",
			req: NewRequest("lol/match/v5/matches/by-puuid/{puuid}/ids", "europe", map[string]string{"puuid": "p"}).
				WithQuery(url.Values{"count": {"5"}}),
			want: "https://europe.api.riotgames.com/lol/match/v5/matches/by-puuid/p/ids?count=5",
		},
		{
			name:    "missing parameter",
			req:     NewRequest("lol/match/v5/matches/{matchId}", "europe", nil),
			wantErr: "matchId",
		},
		{
			name:    "uppercase region",
			req:     NewRequest("lol/match/v5/matches/{matchId}", "EUW1", map[string]string{"matchId": "1"}),
			wantErr: "region",
		},
		{
			name:    "unknown platform",
			req:     NewRequest("lol/match/v5/matches/{matchId}", "junk1", map[string]string{"matchId": "1"}),
			wantErr: "region",
		},
		{
			name: "regional value",
			req:  NewRequest("lol/match/v5/matches/{matchId}", "sea", map[string]string{"matchId": "OC1_1"}),
			want: "https://sea.api.riotgames.com/lol/match/v5/matches/OC1_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.URL(DefaultHost)
			if tt.wantErr != "" {
				var invalid *InvalidParameterError
				require.True(t, errors.As(err, &invalid))
				require.Equal(t, tt.wantErr, invalid.Param)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewRequestCopiesParams(t *testing.T) {
	params := map[string]string{"puuid": "first"}
	req := NewRequest("x/{puuid}", "euw1", params)
	params["puuid"] = "second"

	require.Equal(t, "first", req.Param("puuid"))
}

func TestRequestWithQueryDoesNotMutateOriginal(t *testing.T) {
	base := NewRequest("x", "euw1", nil)
	q := url.Values{"count": {"1"}}
	withQuery := base.WithQuery(q)
	q.Set("count", "2")

	got, err := withQuery.URL("http://localhost")
	require.NoError(t, err)
	require.Equal(t, "http://localhost/x?count=1", got)

	got, err = base.URL("http://localhost")
	require.NoError(t, err)
	require.Equal(t, "http://localhost/x", got)
}

func TestRegionalRoute(t *testing.T) {
	require.Equal(t, "europe", RegionalRoute("euw1"))
	require.Equal(t, "europe", RegionalRoute("EUN1"))
	require.Equal(t, "americas", RegionalRoute("na1"))
	require.Equal(t, "asia", RegionalRoute("kr"))
	require.Equal(t, "sea", RegionalRoute("oc1"))
	require.Equal(t, "europe", RegionalRoute("europe"))
}

func TestIsRoutingValue(t *testing.T) {
	for _, region := range []string{"euw1", "kr", "vn2", "americas", "europe", "asia", "sea"} {
		require.True(t, IsRoutingValue(region), region)
	}
	for _, region := range []string{"", "EUW1", "euw", "junk1", "eu west"} {
		require.False(t, IsRoutingValue(region), region)
	}
}

func TestAccountRoute(t *testing.T) {
	require.Equal(t, "europe", AccountRoute("euw1"))
	require.Equal(t, "americas", AccountRoute("na1"))
	for _, platform := range []string{"oc1", "ph2", "sg2", "th2", "tw2", "vn2", "sea"} {
		require.Equal(t, "asia", AccountRoute(platform), platform)
	}
}
