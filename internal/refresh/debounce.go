package refresh

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultCooldown is the pause between two search requests.
const DefaultCooldown = time.Second

// SearchFunc looks up results for a free-text query.
type SearchFunc[E any] func(ctx context.Context, text string) ([]E, error)

// Debouncer turns input edits into rate-bounded search requests. Each wake-up
// of Signal issues at most one request for the text held in Input at that
// moment, then the task rests for Cooldown before listening again.
type Debouncer[E any] struct {
	Signal   *Signal
	Input    *Text
	Search   SearchFunc[E]
	Cooldown time.Duration
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled.
func (d *Debouncer[E]) Run(ctx context.Context, sink Sink[E]) error {
	logger := loggerOrDiscard(d.Logger)
	cooldown := d.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.Signal.C():
		}

		text := d.Input.Load()
		if strings.TrimSpace(text) == "" {
			// Nothing to look up; clear stale candidates without a request.
			sink.Replace(nil)
		} else {
			fetch := func(ctx context.Context) ([]E, error) { return d.Search(ctx, text) }
			if err := cycle(ctx, sink, logger, fetch, "query", text); err != nil {
				return err
			}
		}

		if err := sleep(ctx, cooldown); err != nil {
			return err
		}
	}
}
