package digitransit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geocodingBody = `{
  "type": "FeatureCollection",
  "features": [
    {"geometry": {"type": "Point", "coordinates": [24.93147, 60.16952]}, "properties": {"label": "Kamppi, Helsinki"}},
    {"geometry": {"type": "Point", "coordinates": [24.9]}, "properties": {"label": "broken"}},
    {"geometry": {"type": "Point", "coordinates": [24.94125, 60.17108]}, "properties": {"label": "Rautatientori, Helsinki"}}
  ]
}`

const planBody = `{
  "data": {
    "plan": {
      "itineraries": [
        {
          "startTime": 1700000000000,
          "endTime": 1700001500000,
          "duration": 1500,
          "legs": [
            {"mode": "WALK", "duration": 240.5, "route": null, "from": {"name": "Origin", "stop": null}, "to": {"name": "Kamppi", "stop": {"name": "Kamppi"}}},
            null,
            {"mode": "BUS", "duration": 1200.0, "route": {"shortName": "550"}, "from": {"name": "Kamppi", "stop": {"name": "Kamppi"}}, "to": {"name": "Itäkeskus", "stop": {"name": "Itäkeskus"}}}
          ]
        },
        null
      ]
    }
  }
}`

func newTestClient(t *testing.T, server *httptest.Server, key string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:            key,
		GeocodingURL:      server.URL + "/geocoding/v1/autocomplete",
		RoutingURL:        server.URL + "/routing/v1/routers/hsl/index/graphql",
		SearchSize:        3,
		Itineraries:       4,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return c
}

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("", DefaultRoutingURL)
	require.NoError(t, err)
	assert.Equal(t, DefaultRoutingURL, u.String())

	u, err = parseEndpoint("api.example.com/geocode?x=1#frag", DefaultGeocodingURL)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "/geocode", u.Path)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)

	_, err = parseEndpoint("http://", DefaultGeocodingURL)
	assert.Error(t, err)
}

func TestClient_SearchEncodesQueryAndDecodesFeatures(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotKey, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocoding/v1/autocomplete", r.URL.Path)
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get(apiKeyHeader)
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, geocodingBody)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server, "secret")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	got, err := c.Search(ctx, "Kamppi")
	require.NoError(t, err)

	assert.Equal(t, "Kamppi", gotQuery.Get("text"))
	assert.Equal(t, "3", gotQuery.Get("size"))
	assert.Equal(t, "secret", gotKey)
	assert.True(t, strings.HasPrefix(gotAgent, "kulku/"), "User-Agent = %q", gotAgent)

	require.Len(t, got, 2, "feature without two coordinates is skipped")
	assert.Equal(t, Candidate{Coordinates: Coordinates{Lat: 60.16952, Lon: 24.93147}, Label: "Kamppi, Helsinki"}, got[0])
	assert.Equal(t, "Rautatientori, Helsinki", got[1].Label)
}

func TestClient_PlanPostsGraphQLAndDecodesItineraries(t *testing.T) {
	t.Parallel()

	var gotReq graphQLRequest
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = io.WriteString(w, planBody)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server, "")
	query := PlanQuery{
		From: Candidate{Coordinates: Coordinates{Lat: 60.1, Lon: 24.9}, Label: "Kamppi"},
		To:   Candidate{Coordinates: Coordinates{Lat: 60.2, Lon: 25.08}, Label: "Itäkeskus"},
	}

	got, err := c.Plan(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotReq.Query, "plan(from: $from, to: $to")
	from, ok := gotReq.Variables["from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 60.1, from["lat"])
	assert.Equal(t, 24.9, from["lon"])
	assert.Equal(t, "Kamppi", from["address"])
	assert.Equal(t, float64(4), gotReq.Variables["numItineraries"])

	require.Len(t, got, 1, "null itineraries are skipped")
	it := got[0]
	assert.Equal(t, time.UnixMilli(1700000000000), it.StartTime)
	assert.Equal(t, time.UnixMilli(1700001500000), it.EndTime)
	assert.Equal(t, 25*time.Minute, it.Duration)

	require.Len(t, it.Legs, 2, "null legs are skipped")
	walk := it.Legs[0]
	assert.Equal(t, ModeWalk, walk.Mode)
	assert.True(t, walk.Mode.IsWalk())
	assert.Equal(t, 240500*time.Millisecond, walk.Duration)
	assert.Empty(t, walk.From)
	assert.Equal(t, "Kamppi", walk.To)

	bus := it.Legs[1]
	assert.Equal(t, ModeBus, bus.Mode)
	assert.Equal(t, "550", bus.RouteShortName)
	assert.Equal(t, "Kamppi", bus.From)
	assert.Equal(t, "Itäkeskus", bus.To)
	assert.Equal(t, 20*time.Minute, bus.Duration)
}

func TestClient_PlanBodyIsReusable(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(raw))
		mu.Unlock()
		_, _ = io.WriteString(w, planBody)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server, "")
	body, err := c.PlanRequestBody(PlanQuery{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.PlanBody(context.Background(), body)
		require.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestClient_ErrorClasses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocoding"):
			if r.URL.Query().Get("text") == "bad-json" {
				_, _ = io.WriteString(w, "{not-json")
				return
			}
			http.Error(w, "nope", http.StatusForbidden)
		case strings.HasPrefix(r.URL.Path, "/routing"):
			_, _ = io.WriteString(w, `{"data": null, "errors": [{"message": "Unknown type InputCoordinates"}]}`)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server, "")
	ctx := context.Background()

	_, err := c.Search(ctx, "anything")
	require.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "returned status 403")

	_, err = c.Search(ctx, "bad-json")
	require.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrNetwork)

	_, err = c.Plan(ctx, PlanQuery{})
	require.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "Unknown type InputCoordinates")
}

func TestClient_MissingPlanIsDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": {"plan": null}}`)
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(t, server, "").Plan(context.Background(), PlanQuery{})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClient_CancelledContextIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c := newTestClient(t, server, "")
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Search(ctx, "slow")
	require.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModeNormalize(t *testing.T) {
	assert.Equal(t, ModeSubway, Mode(" subway ").Normalize())
	assert.False(t, ModeBus.IsWalk())
}
