package threadbundle

import (
	"sync"

	"go.uber.org/zap"
)

// slot is the bundle's per-registration record. worker and started are
// mutated only while the bundle lock is held.
//
// Invariant: started implies worker != nil. A slot with a nil worker is
// either virgin (never started) or post-join (fully cycled); both are
// eligible for a fresh Start.
type slot struct {
	reg     registration
	worker  *Worker
	started bool
}

// Bundle is an ordered group of worker registrations that start and stop
// together. Start walks registrations in bind order, Stop in reverse bind
// order. All mutation is serialized by a single non-reentrant lock, so the
// documented hook restrictions apply (see Hook).
//
// A Bundle is created empty, grows via Bind, and holds no resources of its
// own: discarding it does not join running workers.
type Bundle struct {
	// mu serializes Bind, Start, Stop and all slot mutation
	mu    sync.Mutex
	slots []*slot
	log   *zap.Logger
}

// Option configures a Bundle
type Option func(*Bundle)

// WithLogger sets a structured logger for lifecycle transitions. The
// bundle logs at Debug level only and never logs errors it returns to
// the caller.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bundle) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates an empty Bundle
func New(opts ...Option) *Bundle {
	b := &Bundle{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind registers a worker specification without creating or starting
// anything. The factory is required; hooks are attached through the
// With* bind options. Validation happens before the lock is taken and
// before anything is appended, so a failed Bind leaves the bundle
// unchanged.
//
// Binding concurrently with an in-flight Start is safe but unordered:
// the new registration is only seen by a Start that acquires the lock
// after the Bind completes.
func (b *Bundle) Bind(factory Factory, opts ...BindOption) error {
	if factory == nil {
		return invalidArgument("factory must be non-nil")
	}
	reg := registration{factory: factory}
	for _, opt := range opts {
		if err := opt(&reg); err != nil {
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots = append(b.slots, &slot{reg: reg})
	b.log.Debug("registration bound", zap.Int("slot", len(b.slots)-1))
	return nil
}

// Start creates and starts every bound worker that is not already
// running, in bind order, and returns how many slots were (re)started by
// this call. Slots already running are skipped and not recounted, so a
// second Start with nothing new to do returns 0.
//
// On the first failure the walk stops and the error is returned alongside
// the partial count; whatever started so far stays started, and a later
// Start picks up the remaining slots. A failed before-start hook (or a
// failed Worker.Start) discards the freshly built worker, so the retry
// invokes the factory again. A failed after-start hook does not unwind
// anything: the worker is running, the slot is marked started, and the
// hook's error is returned wrapped in a HookError.
func (b *Bundle) Start() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for i, s := range b.slots {
		if s.worker != nil && s.started {
			continue
		}
		if s.worker == nil {
			w, err := s.reg.factory()
			if err != nil {
				return count, err
			}
			if w == nil {
				return count, invalidArgument("factory returned nil worker")
			}
			s.worker = w
		}
		if err := trigger(s.reg.beforeStart, s.worker); err != nil {
			s.worker = nil
			return count, &HookError{Stage: StageBeforeStart, Slot: i, Err: err}
		}
		if err := s.worker.Start(); err != nil {
			s.worker = nil
			return count, err
		}
		count++
		b.log.Debug("worker started",
			zap.Int("slot", i),
			zap.Stringer("worker", s.worker.ID()))
		if err := b.afterStart(s); err != nil {
			return count, &HookError{Stage: StageAfterStart, Slot: i, Err: err}
		}
	}
	return count, nil
}

// afterStart runs the after-start hook with the started flag update
// guaranteed on all paths, including a panicking hook.
func (b *Bundle) afterStart(s *slot) error {
	defer func() {
		s.started = true
	}()
	return trigger(s.reg.afterStart, s.worker)
}

// Stop joins every running worker, in reverse bind order, and returns how
// many slots were joined by this call. Slots that are virgin or already
// cycled are skipped, so a second Stop with nothing running returns 0.
//
// Stop blocks for as long as each joined worker takes to finish; there is
// no cancellation or timeout. Workers that need prompting to exit should
// be signaled from a before-join hook.
//
// On the first failure the walk stops and the error is returned alongside
// the partial count. A failed after-join hook does not preserve the slot:
// the worker has exited, so the slot is reset to virgin before the hook's
// error is returned wrapped in a HookError. A later Start rebuilds the
// slot's worker from its factory.
func (b *Bundle) Stop() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for i := len(b.slots) - 1; i >= 0; i-- {
		s := b.slots[i]
		if s.worker == nil || !s.started {
			continue
		}
		if err := trigger(s.reg.beforeJoin, s.worker); err != nil {
			return count, &HookError{Stage: StageBeforeJoin, Slot: i, Err: err}
		}
		if err := s.worker.Join(); err != nil {
			return count, err
		}
		count++
		b.log.Debug("worker joined",
			zap.Int("slot", i),
			zap.Stringer("worker", s.worker.ID()))
		if err := b.afterJoin(s); err != nil {
			return count, &HookError{Stage: StageAfterJoin, Slot: i, Err: err}
		}
	}
	return count, nil
}

// afterJoin runs the after-join hook with the slot reset guaranteed on
// all paths, including a panicking hook.
func (b *Bundle) afterJoin(s *slot) error {
	defer func() {
		s.worker = nil
		s.started = false
	}()
	return trigger(s.reg.afterJoin, s.worker)
}

// Len returns the number of registrations, irrespective of running state.
func (b *Bundle) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.slots)
}

// Running returns the number of slots currently marked started.
func (b *Bundle) Running() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.slots {
		if s.started {
			n++
		}
	}
	return n
}

// snapshot copies each slot's (worker, started) pair for observation
// outside the lock. Used by Watch.
func (b *Bundle) snapshot() []slotState {
	b.mu.Lock()
	defer b.mu.Unlock()
	states := make([]slotState, len(b.slots))
	for i, s := range b.slots {
		states[i] = slotState{worker: s.worker, started: s.started}
	}
	return states
}

// slotState is an observation of one slot, decoupled from the live record
type slotState struct {
	worker  *Worker
	started bool
}
