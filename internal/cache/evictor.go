package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Flusher drops every entry of a namespace.
type Flusher interface {
	EvictAll(ctx context.Context, namespace string) error
}

// EvictionRecorder is notified after a namespace has been flushed.
type EvictionRecorder interface {
	CacheEvicted(namespace string)
}

// Evictor flushes its namespaces once a day at local midnight.
type Evictor struct {
	store      Flusher
	namespaces []string
	loc        *time.Location
	log        *slog.Logger
	recorder   EvictionRecorder
	now        func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// EvictorOption customizes an Evictor.
type EvictorOption func(*Evictor)

// WithRecorder reports flushes to r.
func WithRecorder(r EvictionRecorder) EvictorOption {
	return func(e *Evictor) { e.recorder = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) EvictorOption {
	return func(e *Evictor) { e.now = now }
}

// NewEvictor constructs an Evictor for the given namespaces in loc (UTC when nil).
func NewEvictor(store Flusher, loc *time.Location, log *slog.Logger, namespaces []string, opts ...EvictorOption) *Evictor {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	e := &Evictor{
		store:      store,
		namespaces: namespaces,
		loc:        loc,
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NextMidnight returns the first 00:00 in loc strictly after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Start launches the background loop. Calling Start twice is a no-op.
func (e *Evictor) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	go e.run(ctx, e.done)
}

// Stop ends the background loop and waits for it to exit.
func (e *Evictor) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (e *Evictor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	e.log.Info("tour_cache_evictor_started", "namespaces", e.namespaces, "zone", e.loc.String())

	for {
		next := NextMidnight(e.now(), e.loc)
		timer := time.NewTimer(next.Sub(e.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			e.log.Info("tour_cache_evictor_stopped")
			return
		case <-timer.C:
			if err := e.EvictNow(ctx); err != nil {
				e.log.Error("tour_cache_eviction_failed", "err", err)
			}
		}
	}
}

// EvictNow flushes every namespace in parallel and returns the first failure.
func (e *Evictor) EvictNow(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, ns := range e.namespaces {
		g.Go(func() error {
			if err := e.store.EvictAll(gCtx, ns); err != nil {
				return fmt.Errorf("evicting %s: %w", ns, err)
			}
			if e.recorder != nil {
				e.recorder.CacheEvicted(ns)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	e.log.Info("tour_cache_evicted", "namespaces", e.namespaces)
	return nil
}
