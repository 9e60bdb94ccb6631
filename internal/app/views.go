package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/five82/kulku/internal/digitransit"
	"github.com/five82/kulku/internal/lifecycle"
	"github.com/five82/kulku/internal/refresh"
	"github.com/five82/kulku/internal/state"
	"github.com/five82/kulku/internal/ui"
)

type (
	searchView    func(ctx context.Context, opts ui.SearchOptions) (digitransit.Candidate, error)
	itineraryView func(ctx context.Context, opts ui.ItineraryOptions) error
)

// selectLocation runs search views titled title until the user picks a
// candidate. Enter without a selection opens the view again with the text
// typed so far.
func (a *App) selectLocation(ctx context.Context, title string) (digitransit.Candidate, error) {
	var input refresh.Text
	for {
		c, err := a.searchOnce(ctx, title, &input)
		if !errors.Is(err, ui.ErrNoSelection) {
			return c, err
		}
		if ctx.Err() != nil {
			return digitransit.Candidate{}, ctx.Err()
		}
		a.logger.Info("enter pressed without a selection", "view", strings.ToLower(title))
	}
}

// searchOnce owns one search view: the debounce task starts with the view and
// is stopped before the view's result is returned.
func (a *App) searchOnce(ctx context.Context, title string, input *refresh.Text) (digitransit.Candidate, error) {
	logger := a.logger.With("view", strings.ToLower(title))
	store := &state.Store[digitransit.Candidate]{}
	signal := refresh.NewSignal()
	if strings.TrimSpace(input.Load()) != "" {
		signal.Notify()
	}

	debouncer := &refresh.Debouncer[digitransit.Candidate]{
		Signal:   signal,
		Input:    input,
		Search:   a.searcher.Search,
		Cooldown: a.cfg.SearchCooldown,
		Logger:   logger,
	}
	handle := lifecycle.Start(ctx, "search "+strings.ToLower(title), store,
		func(ctx context.Context, w lifecycle.Writer[digitransit.Candidate]) error {
			return debouncer.Run(ctx, w)
		})
	logger.Debug("view started")

	c, viewErr := a.runSearch(ctx, ui.SearchOptions{
		Title:         title,
		Store:         store,
		Input:         input,
		Signal:        signal,
		ThemeName:     a.themeName(),
		FrameInterval: a.cfg.FrameInterval,
		OnTheme:       a.setTheme,
	})

	if err := handle.Stop(); err != nil {
		logger.Error("search task failed", "err", err)
		return digitransit.Candidate{}, err
	}
	logger.Debug("view stopped", "err", viewErr)
	return c, viewErr
}

// watchItineraries shows the itinerary view between from and to, polling the
// planner until the user leaves.
func (a *App) watchItineraries(ctx context.Context, from, to digitransit.Candidate) error {
	logger := a.logger.With("view", "itineraries")
	store := &state.Store[digitransit.Itinerary]{}

	body, err := a.planner.PlanRequestBody(digitransit.PlanQuery{From: from, To: to})
	if err != nil {
		return fmt.Errorf("encode plan request: %w", err)
	}
	poller := &refresh.Poller[digitransit.Itinerary]{
		Fetch: func(ctx context.Context) ([]digitransit.Itinerary, error) {
			return a.planner.PlanBody(ctx, body)
		},
		Interval: a.cfg.PollInterval,
		Logger:   logger,
	}
	handle := lifecycle.Start(ctx, "itineraries", store,
		func(ctx context.Context, w lifecycle.Writer[digitransit.Itinerary]) error {
			return poller.Run(ctx, w)
		})
	logger.Debug("view started", "from", from.Label, "to", to.Label)

	viewErr := a.runItineraries(ctx, ui.ItineraryOptions{
		From:          from.Label,
		To:            to.Label,
		Store:         store,
		ThemeName:     a.themeName(),
		FrameInterval: a.cfg.FrameInterval,
		OnTheme:       a.setTheme,
	})

	if err := handle.Stop(); err != nil {
		logger.Error("poll task failed", "err", err)
		return err
	}
	logger.Debug("view stopped", "err", viewErr)
	return viewErr
}
