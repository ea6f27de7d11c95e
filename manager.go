package threadbundle

import (
	"context"
	"sync"
)

// Manager drives lifecycle operations on multiple bundles concurrently.
// It provides bulk start/stop with configurable concurrency.
type Manager struct {
	// Concurrency is the maximum number of bundles operated on at once
	Concurrency int
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithConcurrency sets the maximum number of concurrent bundle operations
func WithConcurrency(n int) ManagerOption {
	return func(m *Manager) {
		m.Concurrency = n
	}
}

// NewManager creates a new Manager with default settings
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.Concurrency < 1 {
		m.Concurrency = 1
	}

	return m
}

// execute runs op against each bundle in its own goroutine, bounded by the
// configured concurrency. The context is honored only while waiting for a
// slot: once a bundle operation is in flight it runs to completion, since
// neither Start nor Stop is cancellable. Per-bundle counts are summed and
// errors aggregated into a MultiError.
func (m *Manager) execute(ctx context.Context, bundles []*Bundle, op func(*Bundle) (int, error)) (int, error) {
	if len(bundles) == 0 {
		return 0, nil
	}

	// Semaphore for concurrency control
	sem := make(chan struct{}, m.Concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	merr := &MultiError{}

	for _, bundle := range bundles {
		wg.Add(1)
		go func(b *Bundle) {
			defer wg.Done()

			// Acquire semaphore slot
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(ctx.Err())
				mu.Unlock()
				return
			}

			n, err := op(b)
			mu.Lock()
			total += n
			merr.Add(err)
			mu.Unlock()
		}(bundle)
	}

	wg.Wait()

	return total, merr.Err()
}

// StartAll starts the specified bundles and returns the total number of
// slots started across all of them
func (m *Manager) StartAll(ctx context.Context, bundles ...*Bundle) (int, error) {
	return m.execute(ctx, bundles, func(b *Bundle) (int, error) {
		return b.Start()
	})
}

// StopAll stops the specified bundles and returns the total number of
// slots joined across all of them
func (m *Manager) StopAll(ctx context.Context, bundles ...*Bundle) (int, error) {
	return m.execute(ctx, bundles, func(b *Bundle) (int, error) {
		return b.Stop()
	})
}
