package service

import (
	"context"
	"sync"
)

// ExportedKeyedGuard is an exported alias so _test packages can test the guard.
type ExportedKeyedGuard = keyedGuard

// ─────────────────────────────────────────────────────────────
// keyedGuard: one cancellable background task per key
// ─────────────────────────────────────────────────────────────

// keyedGuard runs at most one background task per key (a note ID for
// palette extraction). Each task gets a context that Cancel ends early,
// and shutdown can wait for all of them.
type keyedGuard struct {
	mu      sync.Mutex
	running map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// Start marks key as busy and derives the task context from parent.
// ok is false if a task for key is already running.
func (g *keyedGuard) Start(parent context.Context, key string) (ctx context.Context, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[string]context.CancelFunc)
	}
	if _, busy := g.running[key]; busy {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	g.running[key] = cancel
	g.wg.Add(1)
	return ctx, true
}

// Done ends the task for key. Must follow a successful Start.
func (g *keyedGuard) Done(key string) {
	g.mu.Lock()
	if cancel, ok := g.running[key]; ok {
		cancel()
		delete(g.running, key)
	}
	g.mu.Unlock()
	g.wg.Done()
}

// Cancel cancels the task context for key, if one is running. The task
// still calls Done when it returns.
func (g *keyedGuard) Cancel(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if cancel, ok := g.running[key]; ok {
		cancel()
	}
}

// Busy reports whether a task for key is running.
func (g *keyedGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[key]
	return ok
}

// WaitAll blocks until every running task finishes or ctx is cancelled.
func (g *keyedGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
