package threadbundle

import (
	"sync"

	"github.com/google/uuid"
)

// Worker is a single-shot, joinable execution unit backed by a goroutine.
// Like a daemon thread, a worker never blocks process exit: if the process
// terminates, any still-running workers go down with it.
//
// A worker can be started at most once. After its entry function returns it
// is spent; build a new one to run the entry again.
type Worker struct {
	id    uuid.UUID
	entry func()

	// done is closed when the entry function returns
	done chan struct{}

	// mu protects started
	mu      sync.Mutex
	started bool
}

// NewWorker creates a worker that runs entry when started. The entry
// function receives no arguments; close over whatever state it needs.
func NewWorker(entry func()) (*Worker, error) {
	if entry == nil {
		return nil, invalidArgument("entry function must be non-nil")
	}
	return &Worker{
		id:    uuid.New(),
		entry: entry,
		done:  make(chan struct{}),
	}, nil
}

// ID returns the worker's opaque identity, assigned at construction.
func (w *Worker) ID() uuid.UUID {
	return w.id
}

// Start launches the worker's goroutine. It returns ErrAlreadyStarted if
// the worker was started before, whether or not it has since finished.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}
	w.started = true
	go func() {
		defer close(w.done)
		w.entry()
	}()
	return nil
}

// Join blocks until the worker's entry function returns. It returns
// ErrNotStarted if the worker was never started. Join is safe to call
// from multiple goroutines and is idempotent once the worker finishes.
func (w *Worker) Join() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	<-w.done
	return nil
}

// Alive reports whether the worker's goroutine is currently executing.
func (w *Worker) Alive() bool {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}
