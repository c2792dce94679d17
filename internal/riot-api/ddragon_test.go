package riotapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGameDataClientLoad(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/dd/api/versions.json":                    `["14.20.1","14.19.1"]`,
		"/dd/cdn/14.20.1/data/en_US/champion.json": `{"data":{"Ahri":{"id":"Ahri","key":"103","name":"Ahri","tags":["Mage"]}}}`,
		"/cd/v1/items.json":                        `[{"id":1001,"name":"Boots","priceTotal":300,"iconPath":"/lol-game-data/assets/ASSETS/Items/Icons2D/1001.png"}]`,
		"/cd/v1/perks.json":                        `[{"id":8112,"name":"Electrocute","iconPath":"/lol-game-data/assets/v1/perk-images/Electrocute.png"}]`,
		"/cd/v1/perkstyles.json":                   `{"schemaVersion":2,"styles":[{"id":8100,"name":"Domination","iconPath":"/lol-game-data/assets/v1/perk-images/Styles/7200_Domination.png"}]}`,
	})

	client := NewGameDataClient(
		WithFeedURLs(server.URL+"/dd/", server.URL+"/cd"),
		WithGameDataLogger(quietLogger()),
	)

	data, err := client.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "14.20.1", data.Version)
	require.Equal(t, "103", data.Champions["Ahri"].Key)
	require.Len(t, data.Items, 1)
	require.Equal(t, 300, data.Items[0].PriceTotal)
	require.Len(t, data.Perks, 1)
	require.Len(t, data.PerkStyles, 1)
	require.Equal(t, 8100, data.PerkStyles[0].ID)
}

func TestGameDataClientFallsBackOnVersionFailure(t *testing.T) {
	server := newFeedServer(t, map[string]string{})
	client := NewGameDataClient(
		WithFeedURLs(server.URL, server.URL),
		WithGameDataLogger(quietLogger()),
	)

	version, err := client.CurrentVersion(context.Background())
	require.Error(t, err)
	require.Equal(t, fallbackVersion, version)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	require.True(t, upErr.NotFound())
}

func TestGameDataClientLoadFailsWhenAFeedIsMissing(t *testing.T) {
	server := newFeedServer(t, map[string]string{
		"/api/versions.json":                    `["14.20.1"]`,
		"/cdn/14.20.1/data/en_US/champion.json": `{"data":{}}`,
		"/v1/items.json":                        `[]`,
		"/v1/perks.json":                        `[]`,
	})
	client := NewGameDataClient(
		WithFeedURLs(server.URL, server.URL),
		WithGameDataLogger(quietLogger()),
	)

	_, err := client.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "perkstyles.json")
}
