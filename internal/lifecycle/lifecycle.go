// Package lifecycle owns the background task of a single view. A Handle is
// created when a view starts and stopped when it exits; once Stop returns the
// task can no longer write to its store.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/five82/kulku/internal/state"
)

// Error reports a task that ended for a reason other than cancellation.
type Error struct {
	Task string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Handle is the cancellable reference to one running task.
type Handle struct {
	name   string
	cancel context.CancelFunc
	group  *errgroup.Group

	// gate serialises store writes against Stop. Once stopped is set no
	// Writer call reaches the store.
	gate    sync.Mutex
	stopped bool

	once sync.Once
	err  error
}

// Writer is the task's only path to its store.
type Writer[E any] struct {
	h     *Handle
	store *state.Store[E]
}

// Replace installs items unless the task has been stopped. It reports whether
// the write happened.
func (w Writer[E]) Replace(items []E) bool {
	w.h.gate.Lock()
	defer w.h.gate.Unlock()
	if w.h.stopped {
		return false
	}
	w.store.Replace(items)
	return true
}

// SetFetching updates the in-flight flag unless the task has been stopped.
func (w Writer[E]) SetFetching(fetching bool) bool {
	w.h.gate.Lock()
	defer w.h.gate.Unlock()
	if w.h.stopped {
		return false
	}
	w.store.SetFetching(fetching)
	return true
}

// Start spawns run in its own goroutine, bound to store until Stop is called.
func Start[E any](parent context.Context, name string, store *state.Store[E], run func(context.Context, Writer[E]) error) *Handle {
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)

	h := &Handle{
		name:   name,
		cancel: cancel,
		group:  group,
	}
	w := Writer[E]{h: h, store: store}

	group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		return run(gctx, w)
	})
	return h
}

// Name returns the task name given to Start.
func (h *Handle) Name() string {
	return h.name
}

// Stop cancels the task and waits for it to return. It is safe to call more
// than once; later calls return the first result.
func (h *Handle) Stop() error {
	h.once.Do(func() {
		h.gate.Lock()
		h.stopped = true
		h.cancel()
		h.gate.Unlock()

		err := h.group.Wait()
		if err != nil && !errors.Is(err, context.Canceled) {
			h.err = &Error{Task: h.name, Err: err}
		}
	})
	return h.err
}
