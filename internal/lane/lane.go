// Package lane runs cancelable units of work with single-flight semantics.
//
// A Restartable lane cancels the run in flight whenever a new one starts, and
// only the latest run may commit results. A Drop lane refuses new runs while
// one is in flight.
package lane

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrSuperseded is reported by a run that a newer run replaced.
	ErrSuperseded = errors.New("superseded by a newer run")
	// ErrDropped is reported by a run refused because another was in flight.
	ErrDropped = errors.New("dropped: a run is already in flight")
	// ErrPanicked is reported by a run whose function panicked.
	ErrPanicked = errors.New("run panicked")
)

// Handle tracks a single run.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Finished returns a handle for work that completed without starting a run.
func Finished(err error) *Handle {
	h := newHandle()
	h.finish(err)
	return h
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// recovered converts a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanicked, err)
	}
	return fmt.Errorf("%w: %v", ErrPanicked, r)
}

// Done is closed when the run has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run has returned and reports its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Commit runs apply only while the calling run is still the latest one on its
// lane, and reports whether apply ran. apply executes under the lane lock and
// must not start or cancel runs on the same lane.
type Commit func(apply func()) bool

// Restartable is a lane where every new run cancels the previous one.
// The zero value is ready to use.
type Restartable struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Go starts fn in a new goroutine, canceling the context of any run still in
// flight. A run that is superseded before it returns finishes with
// ErrSuperseded regardless of what fn returned.
func (l *Restartable) Go(parent context.Context, fn func(ctx context.Context, commit Commit) error) *Handle {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	commit := func(apply func()) bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.seq != seq {
			return false
		}
		apply()
		return true
	}

	h := newHandle()
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = recovered(r)
			}

			l.mu.Lock()
			current := l.seq == seq
			if current {
				l.cancel = nil
			}
			l.mu.Unlock()
			cancel()

			if !current {
				err = ErrSuperseded
			}
			h.finish(err)
		}()

		err = fn(ctx, commit)
	}()
	return h
}

// Cancel cancels the run in flight, if any. Its results are never committed.
func (l *Restartable) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Drop is a lane that ignores new runs while one is in flight.
// The zero value is ready to use.
type Drop struct {
	busy atomic.Bool
}

// Go starts fn in a new goroutine unless a run is already in flight, in which
// case the returned handle is already finished with ErrDropped.
func (l *Drop) Go(ctx context.Context, fn func(ctx context.Context) error) *Handle {
	if !l.busy.CompareAndSwap(false, true) {
		return Finished(ErrDropped)
	}

	h := newHandle()
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = recovered(r)
			}
			l.busy.Store(false)
			h.finish(err)
		}()

		err = fn(ctx)
	}()
	return h
}

// Busy reports whether a run is in flight.
func (l *Drop) Busy() bool {
	return l.busy.Load()
}

// Debounce waits for d unless ctx is canceled first.
func Debounce(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
