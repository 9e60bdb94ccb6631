package refresh

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is the time between two itinerary fetches.
const DefaultPollInterval = 60 * time.Second

// Poller fetches immediately, then sleeps Interval after each fetch until
// cancelled. Fetch closes over a query built once by the caller.
type Poller[E any] struct {
	Fetch    func(ctx context.Context) ([]E, error)
	Interval time.Duration
	Logger   *slog.Logger
}

// Run blocks until ctx is cancelled.
func (p *Poller[E]) Run(ctx context.Context, sink Sink[E]) error {
	logger := loggerOrDiscard(p.Logger)
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		if err := cycle(ctx, sink, logger, p.Fetch); err != nil {
			return err
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
}
