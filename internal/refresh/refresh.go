// Package refresh implements the two background fetch engines that feed the
// interactive views: a debounced search driven by input edits and a periodic
// poll driven by a fixed interval.
//
// Both engines run inside a lifecycle.Handle and publish through a Sink, so
// they never touch the store after their view has been stopped.
package refresh

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives the results of a fetch cycle. lifecycle.Writer satisfies it.
type Sink[E any] interface {
	Replace(items []E) bool
	SetFetching(fetching bool) bool
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// cycle runs one fetch and publishes its result. Failures are logged and
// leave the previous result set in place. It returns a non-nil error only
// when ctx has been cancelled.
func cycle[E any](ctx context.Context, sink Sink[E], logger *slog.Logger, fetch func(context.Context) ([]E, error), attrs ...any) error {
	sink.SetFetching(true)
	started := time.Now()
	items, err := fetch(ctx)
	sink.SetFetching(false)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		logger.Warn("fetch failed", append(attrs, "err", err)...)
		return nil
	}
	sink.Replace(items)
	logger.Debug("fetch complete", append(attrs, "count", len(items), "took", time.Since(started))...)
	return nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
