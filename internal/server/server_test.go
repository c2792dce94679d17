package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
)

const matchJSON = `{
  "metadata": {"matchId": "EUW1_42"},
  "info": {
    "gameCreation": 1719835200000, "gameDuration": 1500, "mapId": 11, "queueId": 420,
    "participants": [
      {"puuid": "p1", "riotIdGameName": "Blue", "teamId": 100, "championId": 103,
       "kills": 7, "deaths": 0, "assists": 5, "lane": "MIDDLE", "role": "SOLO", "win": true}
    ]
  }
}`

type staticLoader struct{}

func (staticLoader) Load(ctx context.Context) (*riotapi.GameData, error) {
	return &riotapi.GameData{
		Version:   "14.20.1",
		Champions: map[string]riotapi.Champion{"Ahri": {ID: "Ahri", Key: "103", Name: "Ahri"}},
	}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/riot/account/v1/accounts/by-riot-id/Blue/EUW":
			_, _ = w.Write([]byte(`{"puuid":"p1","gameName":"Blue","tagLine":"EUW"}`))
		case "/lol/summoner/v4/summoners/by-puuid/p1", "/lol/summoner/v4/summoners/by-name/Blue":
			_, _ = w.Write([]byte(`{"id":"s1","puuid":"p1","summonerLevel":120}`))
		case "/lol/league/v4/entries/by-puuid/p1":
			_, _ = w.Write([]byte(`[]`))
		case "/lol/match/v5/matches/by-puuid/p1/ids":
			_, _ = w.Write([]byte(`["EUW1_42"]`))
		case "/lol/match/v5/matches/EUW1_42":
			_, _ = w.Write([]byte(matchJSON))
		case "/lol/match/v5/matches/EUW1_BUSY":
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		case "/lol/match/v5/matches/EUW1_BROKEN":
			w.WriteHeader(http.StatusInternalServerError)
		case "/lol/match/v5/matches/EUW1_EXPIRED":
			w.WriteHeader(http.StatusUnauthorized)
		case "/lol/match/v5/matches/EUW1_FORBIDDEN":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	riot := riotapi.NewClient("key", "euw1",
		riotapi.WithHost(upstream.URL),
		riotapi.WithLogger(quietLogger()),
		riotapi.WithNetworkRetry(100*time.Millisecond),
	)
	t.Cleanup(riot.Close)

	svc := service.New(service.Deps{
		Riot:     riot,
		Contexts: service.NewContextProvider(staticLoader{}),
		Logger:   quietLogger(),
	})
	return New(":0", Deps{Service: svc, Limiters: riot, Logger: quietLogger()})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestProfileRoute(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/euw1/accounts/Blue/EUW")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var profile service.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, "Blue#EUW", profile.Summoner.Name)
	require.Equal(t, "UNRANKED", profile.Rank.Tier)
}

func TestSummonerRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/euw1/summoners/Blue")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, s, "/api/euw1/summoners/p1/matches?count=1&queue=420")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `["EUW1_42"]`, rec.Body.String())
}

func TestMatchRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/euw1/matches/EUW1_42?detailed=true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"percentStats"`)

	rec = get(t, s, "/api/euw1/matches/EUW1_42/players/p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	player := result["player"].(map[string]any)
	require.Equal(t, "∞", player["stats"].(map[string]any)["kda"])
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"bad count", "/api/euw1/summoners/p1/matches?count=abc", http.StatusBadRequest},
		{"count out of range", "/api/euw1/summoners/p1/matches?count=101", http.StatusBadRequest},
		{"bad detailed flag", "/api/euw1/matches/EUW1_42?detailed=maybe", http.StatusBadRequest},
		{"bad region", "/api/EUW1/summoners/Blue", http.StatusBadRequest},
		{"unknown account", "/api/euw1/accounts/Nobody/EUW", http.StatusNotFound},
		{"player not in match", "/api/euw1/matches/EUW1_42/players/stranger", http.StatusNotFound},
		{"upstream failure", "/api/euw1/matches/EUW1_BROKEN", http.StatusBadGateway},
		{"upstream rejects api key", "/api/euw1/matches/EUW1_EXPIRED", http.StatusBadGateway},
		{"upstream forbids api key", "/api/euw1/matches/EUW1_FORBIDDEN", http.StatusBadGateway},
		{"unknown region", "/api/junk1/summoners/Blue", http.StatusBadRequest},
		{"history disabled", "/api/history/p1", http.StatusNotImplemented},
		{"unknown route", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			require.Equal(t, tt.status, rec.Code)
			require.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestRateLimitedUpstream(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/euw1/matches/EUW1_BUSY")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "0", rec.Header().Get("Retry-After"))
	require.Contains(t, decodeError(t, rec), "rate limit exceeded")
}

func TestHealthReportsLimiters(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, get(t, s, "/api/euw1/summoners/Blue").Code)

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string                 `json:"status"`
		Limiters []riotapi.LimiterStats `json:"limiters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.Len(t, body.Limiters, 1)
	require.Equal(t, "euw1", body.Limiters[0].Group)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, get(t, s, "/api/euw1/summoners/Blue").Code)

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "leaguestats_riot_requests_total")
}

func TestPlayerRoute(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/euw1/players/p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var summoner riotapi.Summoner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summoner))
	require.Equal(t, 120, summoner.SummonerLevel)
}

func TestUnknownRegionsLeaveNoLimiters(t *testing.T) {
	s := newTestServer(t)

	for _, region := range []string{"junk1", "junk2", "xx"} {
		require.Equal(t, http.StatusBadRequest, get(t, s, "/api/"+region+"/summoners/Blue").Code)
	}

	rec := get(t, s, "/health")
	var body struct {
		Limiters []riotapi.LimiterStats `json:"limiters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Empty(t, body.Limiters)
}
