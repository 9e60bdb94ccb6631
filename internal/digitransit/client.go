package digitransit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Error classes. Every error returned by Client wraps exactly one of them.
var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("decode error")
)

// Searcher looks up locations by free text.
type Searcher interface {
	Search(ctx context.Context, text string) ([]Candidate, error)
}

// Planner looks up itineraries between two locations. A request body is
// encoded once per query and then sent any number of times.
type Planner interface {
	PlanRequestBody(query PlanQuery) ([]byte, error)
	PlanBody(ctx context.Context, body []byte) ([]Itinerary, error)
}

// Ensure Client implements both at compile time.
var (
	_ Searcher = (*Client)(nil)
	_ Planner  = (*Client)(nil)
)

const (
	DefaultGeocodingURL      = "https://api.digitransit.fi/geocoding/v1/autocomplete"
	DefaultRoutingURL        = "https://api.digitransit.fi/routing/v1/routers/hsl/index/graphql"
	DefaultSearchSize        = 10
	DefaultItineraries       = 5
	DefaultRequestsPerSecond = 5.0

	defaultUserAgent = "kulku/0.1"
	requestTimeout   = 10 * time.Second
	apiKeyHeader     = "digitransit-subscription-key"
)

// Options configure a Client. Zero values use defaults.
type Options struct {
	APIKey            string
	GeocodingURL      string
	RoutingURL        string
	SearchSize        int
	Itineraries       int
	RequestsPerSecond float64
	Timeout           time.Duration
	UserAgent         string
}

// Client talks to the Digitransit geocoding and routing APIs.
type Client struct {
	geocodingURL *url.URL
	routingURL   *url.URL
	apiKey       string
	searchSize   int
	itineraries  int
	http         *http.Client
	limiter      *rate.Limiter
	userAgent    string
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	geocoding, err := parseEndpoint(opts.GeocodingURL, DefaultGeocodingURL)
	if err != nil {
		return nil, fmt.Errorf("geocoding url: %w", err)
	}
	routing, err := parseEndpoint(opts.RoutingURL, DefaultRoutingURL)
	if err != nil {
		return nil, fmt.Errorf("routing url: %w", err)
	}

	c := &Client{
		geocodingURL: geocoding,
		routingURL:   routing,
		apiKey:       strings.TrimSpace(opts.APIKey),
		searchSize:   opts.SearchSize,
		itineraries:  opts.Itineraries,
		userAgent:    opts.UserAgent,
	}
	if c.searchSize <= 0 {
		c.searchSize = DefaultSearchSize
	}
	if c.itineraries <= 0 {
		c.itineraries = DefaultItineraries
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	c.http = &http.Client{Timeout: timeout}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), 1)

	return c, nil
}

// Search returns geocoding candidates for text.
func (c *Client) Search(ctx context.Context, text string) ([]Candidate, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: client is nil", ErrNetwork)
	}
	values := url.Values{}
	values.Set("text", text)
	values.Set("size", strconv.Itoa(c.searchSize))

	reqURL := *c.geocodingURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}

	var payload featureCollection
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(payload.Features))
	for _, f := range payload.Features {
		coords := f.Geometry.Coordinates
		if len(coords) < 2 {
			continue
		}
		candidates = append(candidates, Candidate{
			Coordinates: Coordinates{Lon: coords[0], Lat: coords[1]},
			Label:       f.Properties.Label,
		})
	}
	return candidates, nil
}

// Plan returns itineraries between the query's endpoints.
func (c *Client) Plan(ctx context.Context, query PlanQuery) ([]Itinerary, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: client is nil", ErrNetwork)
	}
	body, err := c.PlanRequestBody(query)
	if err != nil {
		return nil, err
	}
	return c.PlanBody(ctx, body)
}

// PlanRequestBody encodes the GraphQL request for query. The result can be
// sent any number of times through PlanBody.
func (c *Client) PlanRequestBody(query PlanQuery) ([]byte, error) {
	body, err := json.Marshal(graphQLRequest{
		Query: planQueryDocument,
		Variables: map[string]any{
			"from":           toInput(query.From),
			"to":             toInput(query.To),
			"numItineraries": c.itineraries,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrDecode, err)
	}
	return body, nil
}

// PlanBody posts a pre-encoded plan request.
func (c *Client) PlanBody(ctx context.Context, body []byte) ([]Itinerary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.routingURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload planResponse
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 {
		msgs := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: graphql: %s", ErrDecode, strings.Join(msgs, "; "))
	}
	if payload.Data == nil || payload.Data.Plan == nil {
		return nil, fmt.Errorf("%w: response has no plan", ErrDecode)
	}

	itineraries := make([]Itinerary, 0, len(payload.Data.Plan.Itineraries))
	for _, it := range payload.Data.Plan.Itineraries {
		if it == nil {
			continue
		}
		itineraries = append(itineraries, it.toItinerary())
	}
	return itineraries, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%w: rate limit: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: api %s returned status %d", ErrNetwork, req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrDecode, err)
	}
	return nil
}

func toInput(c Candidate) inputCoordinates {
	return inputCoordinates{
		Lat:     c.Coordinates.Lat,
		Lon:     c.Coordinates.Lon,
		Address: c.Label,
	}
}

func parseEndpoint(raw, fallback string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = fallback
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
