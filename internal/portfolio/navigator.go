package portfolio

import (
	"context"
	"sync"
)

// Loader produces a Bundle for a handle. Implemented by *Aggregator.
type Loader interface {
	Aggregate(ctx context.Context, handle string) (Bundle, error)
}

// Result is the outcome of one navigation.
type Result struct {
	Handle string
	Bundle Bundle
	Err    error
}

// Navigator serializes navigations for a long-lived consumer so that only
// the most recently requested handle is ever applied. Starting a new
// navigation cancels the previous one; a late result for a superseded
// handle is dropped even if it arrives after the newer one.
type Navigator struct {
	loader Loader
	apply  func(Result)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNavigator creates a Navigator that calls apply with each current result.
// apply is called with the Navigator's lock held and must not call Navigate.
func NewNavigator(loader Loader, apply func(Result)) *Navigator {
	return &Navigator{loader: loader, apply: apply}
}

// Navigate starts loading handle in the background and supersedes any
// navigation still in flight.
func (n *Navigator) Navigate(ctx context.Context, handle string) {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.seq++
	seq := n.seq
	loadCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.mu.Unlock()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()

		b, err := n.loader.Aggregate(loadCtx, handle)

		n.mu.Lock()
		defer n.mu.Unlock()
		if seq != n.seq {
			return
		}
		n.apply(Result{Handle: handle, Bundle: b, Err: err})
	}()
}

// Wait blocks until every started navigation has finished.
func (n *Navigator) Wait() {
	n.wg.Wait()
}
