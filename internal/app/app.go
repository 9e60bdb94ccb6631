package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/five82/kulku/internal/config"
	"github.com/five82/kulku/internal/digitransit"
	"github.com/five82/kulku/internal/prefs"
	"github.com/five82/kulku/internal/ui"
)

// Options configure a kulku run. Zero values defer to the config file.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses ~/.config/kulku/prefs.toml
	PollSeconds int
	LogFile     string
	Debug       bool
	Theme       string
}

// App wires the search and itinerary views to their background tasks.
type App struct {
	cfg       config.Config
	searcher  digitransit.Searcher
	planner   digitransit.Planner
	logger    *slog.Logger
	prefsPath string

	runSearch      searchView
	runItineraries itineraryView

	mu    sync.Mutex
	theme string
}

// Run picks an origin and a destination, then shows itineraries between them
// until the user quits or ctx is cancelled. Aborting a view is not an error.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, closeLog := openLogger(cfg.LogFile, parseLevel(cfg.LogLevel, opts.Debug))
	defer closeLog()

	client, err := digitransit.NewClient(digitransit.Options{
		APIKey:            cfg.APIKey,
		GeocodingURL:      cfg.GeocodingURL,
		RoutingURL:        cfg.RoutingURL,
		SearchSize:        cfg.SearchSize,
		Itineraries:       cfg.Itineraries,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("init digitransit client: %w", err)
	}
	if cfg.APIKey == "" {
		logger.Warn("no digitransit subscription key configured", "env", config.APIKeyEnv)
	}

	theme := cfg.Theme
	if opts.Theme == "" {
		if saved := prefs.Load(opts.PrefsPath).Theme; saved != "" {
			theme = saved
		}
	}

	a := &App{
		cfg:            cfg,
		searcher:       client,
		planner:        client,
		logger:         logger,
		prefsPath:      opts.PrefsPath,
		runSearch:      ui.RunSearch,
		runItineraries: ui.RunItineraries,
		theme:          theme,
	}
	logger.Info("kulku started",
		"poll_interval", cfg.PollInterval,
		"search_cooldown", cfg.SearchCooldown,
		"theme", theme)

	return a.run(ctx)
}

// run executes a session and sorts its outcome: user aborts and interrupts
// end the process quietly, everything else is reported.
func (a *App) run(ctx context.Context) error {
	err := a.session(ctx)
	switch {
	case err == nil:
		a.logger.Info("kulku finished")
		return nil
	case errors.Is(err, ui.ErrCanceled):
		a.logger.Info("aborted by user")
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		a.logger.Info("interrupted")
		return nil
	default:
		a.logger.Error("kulku failed", "err", err)
		return err
	}
}

func (a *App) session(ctx context.Context) error {
	from, err := a.selectLocation(ctx, "Origin")
	if err != nil {
		return err
	}
	a.logger.Info("origin selected", "label", from.Label)

	to, err := a.selectLocation(ctx, "Destination")
	if err != nil {
		return err
	}
	a.logger.Info("destination selected", "label", to.Label)

	return a.watchItineraries(ctx, from, to)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(opts.PollSeconds) * time.Second
	}
	if path := strings.TrimSpace(opts.LogFile); path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			cfg.LogFile = expanded
		}
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
}

func (a *App) themeName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// setTheme records a theme picked at runtime and persists it for the next run.
// Views call it from tea commands, so calls may overlap; mu keeps the writes
// in sequence.
func (a *App) setTheme(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.theme = name

	if err := prefs.Save(a.prefsPath, prefs.Prefs{Theme: name}); err != nil {
		a.logger.Warn("save prefs failed", "err", err)
	}
}
