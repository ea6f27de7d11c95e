package threadbundle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vawter.tech/stopper"
)

// WatchEvent represents a liveness transition observed on one slot
type WatchEvent struct {
	// Slot is the index of the registration that transitioned
	Slot int
	// Worker is the identity of the worker involved in the transition.
	// For an exit transition this is the identity of the worker that
	// just stopped executing.
	Worker uuid.UUID
	// Alive is the slot's new liveness state
	Alive bool
}

// WatchCleanupFunc stops a watch and waits for its goroutine to exit
type WatchCleanupFunc func() error

// Watch polls the bundle's slots and emits a WatchEvent whenever a slot's
// liveness changes: a worker starting executes as an Alive=true event, a
// worker's entry function returning (or the slot being joined) as an
// Alive=false event.
//
// interval is the polling period; values <= 0 select DefaultWatchInterval.
// The returned cleanup function stops the poller and must be called to
// release it; canceling ctx stops it as well. The events channel is closed
// when the poller exits.
//
// The poller snapshots slot state under the bundle lock but never runs
// user code, so it cannot deadlock with hooks.
func (b *Bundle) Watch(ctx context.Context, interval time.Duration) (<-chan WatchEvent, WatchCleanupFunc, error) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	ch := make(chan WatchEvent, 10)

	// Stopper context manages the poller goroutine's lifecycle
	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	// last holds the previously observed liveness per slot; the slice
	// grows as registrations are bound while the watch runs
	var last []bool

	// lastID remembers each slot's worker identity so exit events can
	// still name the worker after the slot is reset
	var lastID []uuid.UUID

	poll := func() {
		states := b.snapshot()
		for len(last) < len(states) {
			last = append(last, false)
			lastID = append(lastID, uuid.UUID{})
		}
		for i, st := range states {
			alive := st.started && IsAlive(st.worker)
			if st.worker != nil {
				lastID[i] = st.worker.ID()
			}
			if alive == last[i] {
				continue
			}
			last[i] = alive
			ev := WatchEvent{Slot: i, Worker: lastID[i], Alive: alive}
			select {
			case ch <- ev:
			case <-sctx.Stopping():
				return
			}
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Initial observation so a watch on an already-running bundle
		// reports current state promptly
		poll()

		for {
			select {
			case <-sctx.Stopping():
				return nil
			case <-ticker.C:
				poll()
			}
		}
	})

	return ch, cleanup, nil
}
