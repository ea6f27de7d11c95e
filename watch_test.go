package threadbundle

import (
	"context"
	"testing"
	"time"
)

// awaitEvent reads one event matching the wanted liveness, failing the test
// on timeout.
func awaitEvent(t *testing.T, events <-chan WatchEvent, alive bool) WatchEvent {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("events channel closed while waiting")
			}
			if ev.Alive == alive {
				return ev
			}
		case <-deadline:
			t.Fatalf("timeout waiting for alive=%v event", alive)
		}
	}
}

func TestWatchObservesTransitions(t *testing.T) {
	b := New()
	release := make(chan struct{})
	bindBlocking(t, b, release)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup, err := b.Watch(ctx, 5*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleanup failed: %v", err)
		}
	}()

	if _, err := b.Start(); err != nil {
		t.Fatal(err)
	}

	ev := awaitEvent(t, events, true)
	if ev.Slot != 0 {
		t.Errorf("event slot = %d, want 0", ev.Slot)
	}

	// The worker body returning on its own is an exit transition, even
	// before Stop joins the slot.
	close(release)
	ev = awaitEvent(t, events, false)
	if ev.Slot != 0 {
		t.Errorf("exit event slot = %d, want 0", ev.Slot)
	}

	if n, err := b.Stop(); err != nil || n != 1 {
		t.Errorf("Stop() = (%d, %v), want (1, nil)", n, err)
	}
}

func TestWatchAlreadyRunningBundle(t *testing.T) {
	b := New()
	release := make(chan struct{})
	bindBlocking(t, b, release)

	if _, err := b.Start(); err != nil {
		t.Fatal(err)
	}

	events, cleanup, err := b.Watch(context.Background(), 5*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	// The initial observation reports current liveness promptly.
	ev := awaitEvent(t, events, true)
	if ev.Slot != 0 {
		t.Errorf("event slot = %d, want 0", ev.Slot)
	}

	if err := cleanup(); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}

	close(release)
	if _, err := b.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestWatchCleanup(t *testing.T) {
	b, release := createTestBundle(t, 1)
	defer close(release)

	t.Run("CleanupClosesChannel", func(t *testing.T) {
		events, cleanup, err := b.Watch(context.Background(), 5*time.Millisecond)
		if err != nil {
			t.Fatal(err)
		}

		done := make(chan error, 1)
		go func() {
			done <- cleanup()
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("cleanup failed: %v", err)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatal("cleanup took too long")
		}

		select {
		case _, ok := <-events:
			if ok {
				t.Error("unexpected event after cleanup")
			}
		case <-time.After(500 * time.Millisecond):
			t.Error("events channel not closed after cleanup")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		events, cleanup, err := b.Watch(ctx, 5*time.Millisecond)
		if err != nil {
			t.Fatal(err)
		}

		cancel()

		// Cleanup after cancellation must not hang.
		done := make(chan error, 1)
		go func() {
			done <- cleanup()
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			t.Fatal("cleanup after cancel took too long")
		}

		deadline := time.After(2 * time.Second)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("events channel not closed after context cancel")
			}
		}
	})
}

func TestWatchDefaultInterval(t *testing.T) {
	b, release := createTestBundle(t, 1)

	events, cleanup, err := b.Watch(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.Start(); err != nil {
		t.Fatal(err)
	}
	awaitEvent(t, events, true)

	if err := cleanup(); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}

	close(release)
	if _, err := b.Stop(); err != nil {
		t.Fatal(err)
	}
}
