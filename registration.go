package threadbundle

// Factory builds a fresh worker for a slot. It is invoked lazily by
// Bundle.Start, immediately before the worker is started - never at bind
// time - and again on every restart cycle, since workers are single-shot.
type Factory func() (*Worker, error)

// Hook is an optional lifecycle callback. It receives the worker the
// transition applies to and may veto the walk by returning an error; the
// bundle wraps such errors in a HookError and stops processing further
// slots.
//
// Hooks run with the bundle lock held. They must not call Bind, Start,
// Stop, Len or Running on the same bundle, and must not retain or mutate
// bundle bookkeeping.
type Hook func(*Worker) error

// registration pairs a factory with its optional lifecycle hooks. It is
// immutable once bound.
type registration struct {
	factory     Factory
	beforeStart Hook
	afterStart  Hook
	beforeJoin  Hook
	afterJoin   Hook
}

// BindOption attaches an optional lifecycle hook to a registration
type BindOption func(*registration) error

// WithBeforeStart sets a hook that runs after the factory builds a worker
// and before the worker is started. If the hook fails, the freshly built
// worker is discarded and the slot stays eligible for a future Start.
func WithBeforeStart(h Hook) BindOption {
	return func(r *registration) error {
		if h == nil {
			return invalidArgument("before-start hook must be non-nil")
		}
		r.beforeStart = h
		return nil
	}
}

// WithAfterStart sets a hook that runs immediately after the worker is
// started. The slot is marked started whether or not the hook fails; the
// worker is, in fact, running.
func WithAfterStart(h Hook) BindOption {
	return func(r *registration) error {
		if h == nil {
			return invalidArgument("after-start hook must be non-nil")
		}
		r.afterStart = h
		return nil
	}
}

// WithBeforeJoin sets a hook that runs before the worker is joined. This
// is the conventional place to signal the worker's entry function to
// return, since Stop waits for natural completion.
func WithBeforeJoin(h Hook) BindOption {
	return func(r *registration) error {
		if h == nil {
			return invalidArgument("before-join hook must be non-nil")
		}
		r.beforeJoin = h
		return nil
	}
}

// WithAfterJoin sets a hook that runs after the worker is joined. The
// slot is reset to its virgin state whether or not the hook fails; the
// worker has, in fact, exited.
func WithAfterJoin(h Hook) BindOption {
	return func(r *registration) error {
		if h == nil {
			return invalidArgument("after-join hook must be non-nil")
		}
		r.afterJoin = h
		return nil
	}
}

// trigger runs a hook if one is set
func trigger(h Hook, w *Worker) error {
	if h == nil {
		return nil
	}
	return h(w)
}
