package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/kulku/internal/config"
	"github.com/five82/kulku/internal/digitransit"
	"github.com/five82/kulku/internal/lifecycle"
	"github.com/five82/kulku/internal/prefs"
	"github.com/five82/kulku/internal/state"
	"github.com/five82/kulku/internal/ui"
)

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, text string) ([]digitransit.Candidate, error) {
	return []digitransit.Candidate{{Label: text + " station"}}, nil
}

type fakePlanner struct {
	mu      sync.Mutex
	encodes int
	queries []digitransit.PlanQuery
	panics  bool
}

func (p *fakePlanner) PlanRequestBody(q digitransit.PlanQuery) ([]byte, error) {
	p.mu.Lock()
	p.encodes++
	p.mu.Unlock()
	return json.Marshal(q)
}

func (p *fakePlanner) PlanBody(ctx context.Context, body []byte) ([]digitransit.Itinerary, error) {
	if p.panics {
		panic("planner exploded")
	}
	var q digitransit.PlanQuery
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()
	return []digitransit.Itinerary{{Duration: 10 * time.Minute}}, nil
}

func (p *fakePlanner) encodeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encodes
}

func (p *fakePlanner) calls() []digitransit.PlanQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]digitransit.PlanQuery(nil), p.queries...)
}

func newTestApp(t *testing.T, planner digitransit.Planner) *App {
	t.Helper()
	cfg := config.Default()
	cfg.SearchCooldown = 10 * time.Millisecond
	cfg.PollInterval = 20 * time.Millisecond
	return &App{
		cfg:       cfg,
		searcher:  fakeSearcher{},
		planner:   planner,
		logger:    slog.New(slog.DiscardHandler),
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		theme:     "Nightfox",
	}
}

// typeAndPick plays a user typing text and picking the first result.
func typeAndPick(t *testing.T, text string) searchView {
	return func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		opts.Input.Store(text)
		opts.Signal.Notify()
		if !assert.Eventually(t, func() bool { return opts.Store.Snapshot().Len() > 0 }, time.Second, time.Millisecond) {
			return digitransit.Candidate{}, errors.New("no results")
		}
		return opts.Store.Snapshot().Items[0], nil
	}
}

func TestSession_SelectsBothEndsThenPolls(t *testing.T) {
	planner := &fakePlanner{}
	a := newTestApp(t, planner)

	texts := map[string]string{"Origin": "Kamppi", "Destination": "Pasila"}
	var mu sync.Mutex
	var searchStores []*state.Store[digitransit.Candidate]
	a.runSearch = func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		mu.Lock()
		searchStores = append(searchStores, opts.Store)
		mu.Unlock()
		return typeAndPick(t, texts[opts.Title])(ctx, opts)
	}

	var itineraryStore *state.Store[digitransit.Itinerary]
	a.runItineraries = func(ctx context.Context, opts ui.ItineraryOptions) error {
		itineraryStore = opts.Store
		assert.Equal(t, "Kamppi station", opts.From)
		assert.Equal(t, "Pasila station", opts.To)
		require.Eventually(t, func() bool { return opts.Store.Version() >= 2 }, time.Second, time.Millisecond)
		return nil
	}

	require.NoError(t, a.run(context.Background()))

	calls := planner.calls()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, 1, planner.encodeCount(), "plan request is encoded once per itinerary view")
	for _, q := range calls {
		assert.Equal(t, "Kamppi station", q.From.Label)
		assert.Equal(t, "Pasila station", q.To.Label)
	}

	// Every task was stopped before its view returned.
	frozen := itineraryStore.Version()
	searchVersions := []uint64{searchStores[0].Version(), searchStores[1].Version()}
	time.Sleep(5 * a.cfg.PollInterval)
	assert.Equal(t, frozen, itineraryStore.Version())
	assert.Equal(t, searchVersions, []uint64{searchStores[0].Version(), searchStores[1].Version()})
	assert.Len(t, planner.calls(), len(calls))
}

func TestSelectLocation_NoSelectionReentersWithTypedText(t *testing.T) {
	a := newTestApp(t, &fakePlanner{})

	var attempts []string
	a.runSearch = func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		attempts = append(attempts, opts.Input.Load())
		if len(attempts) == 1 {
			opts.Input.Store("Itis")
			return digitransit.Candidate{}, ui.ErrNoSelection
		}
		// The carried-over text triggers a search without further typing.
		require.Eventually(t, func() bool { return opts.Store.Snapshot().Len() > 0 }, time.Second, time.Millisecond)
		return opts.Store.Snapshot().Items[0], nil
	}

	got, err := a.selectLocation(context.Background(), "Origin")
	require.NoError(t, err)
	assert.Equal(t, "Itis station", got.Label)
	assert.Equal(t, []string{"", "Itis"}, attempts)
}

func TestRun_UserAbortIsNotAnError(t *testing.T) {
	a := newTestApp(t, &fakePlanner{})
	a.runSearch = func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		return digitransit.Candidate{}, ui.ErrCanceled
	}
	a.runItineraries = func(ctx context.Context, opts ui.ItineraryOptions) error {
		t.Fatal("itinerary view must not open after an abort")
		return nil
	}
	assert.NoError(t, a.run(context.Background()))
}

func TestRun_InterruptIsNotAnError(t *testing.T) {
	a := newTestApp(t, &fakePlanner{})
	ctx, cancel := context.WithCancel(context.Background())
	a.runSearch = func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		cancel()
		<-ctx.Done()
		return digitransit.Candidate{}, ctx.Err()
	}
	assert.NoError(t, a.run(ctx))
}

func TestRun_TaskFailureIsReported(t *testing.T) {
	a := newTestApp(t, &fakePlanner{panics: true})
	a.runSearch = func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error) {
		return digitransit.Candidate{Label: opts.Title}, nil
	}
	a.runItineraries = func(ctx context.Context, opts ui.ItineraryOptions) error {
		time.Sleep(20 * time.Millisecond)
		return nil
	}

	err := a.run(context.Background())
	var taskErr *lifecycle.Error
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "itineraries", taskErr.Task)
}

func TestSetTheme_PersistsAcrossRuns(t *testing.T) {
	a := newTestApp(t, &fakePlanner{})
	a.setTheme("Slate")

	assert.Equal(t, "Slate", a.themeName())
	assert.Equal(t, "Slate", prefs.Load(a.prefsPath).Theme)
}

func TestApplyOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Default()
	applyOverrides(&cfg, Options{PollSeconds: 5, LogFile: "~/kulku.log", Theme: "Kanagawa"})
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, filepath.Join(home, "kulku.log"), cfg.LogFile)
	assert.Equal(t, "Kanagawa", cfg.Theme)

	before := cfg
	applyOverrides(&cfg, Options{})
	assert.Equal(t, before, cfg)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("warn", false))
	assert.Equal(t, slog.LevelDebug, parseLevel("error", true))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty", false))
}

func TestOpenLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kulku.log")
	logger, closeLog := openLogger(path, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("fetch failed", "view", "origin")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"fetch failed\" view=origin")
	assert.NotContains(t, string(data), "hidden")
}

func TestOpenLogger_UnopenableFileDiscards(t *testing.T) {
	dir := t.TempDir()
	logger, closeLog := openLogger(dir, slog.LevelInfo) // a directory, not a file
	defer closeLog()
	require.NotNil(t, logger)
	logger.Info("goes nowhere")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
