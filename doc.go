// Package threadbundle provides a lifecycle manager for groups of worker
// goroutines that start and stop together.
//
// The core functionality centers around the Bundle type, which holds an
// ordered set of deferred worker registrations ("bind now, create and start
// later") and walks them as a unit:
//
//	b := threadbundle.New()
//
//	err := b.Bind(func() (*threadbundle.Worker, error) {
//	    return threadbundle.NewWorker(consumeQueue)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Construct and start every bound worker, in bind order.
//	started, err := b.Start()
//
//	// Join every running worker, in reverse bind order.
//	stopped, err := b.Stop()
//
// Each registration pairs a Factory with up to four optional lifecycle
// hooks (before/after start, before/after join). Hooks run while the
// bundle's internal lock is held, so they must never call back into Bind,
// Start, Stop, Len or Running on the same bundle - doing so deadlocks.
// The lock is not reentrant.
//
// # Manager for Bulk Operations
//
// The Manager type is provided as a convenience for applications that need
// to drive several bundles at once. It's particularly useful for:
//
//   - System initialization/shutdown sequences
//   - Test harnesses that stand up many worker groups
//   - Orchestration layers that own one bundle per subsystem
//
// If your application only manages a single bundle, you don't need the
// Manager - the Bundle type provides all core functionality.
//
//	mgr := threadbundle.NewManager(
//	    threadbundle.WithConcurrency(5),
//	)
//
//	started, err := mgr.StartAll(ctx, webBundle, dbBundle, cacheBundle)
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Crash-safe bookkeeping (a failing hook never leaves a slot in an
//     ambiguous started state)
//   - Ordered transitions (start in bind order, stop in reverse)
//   - Type safety (hooks and factories are narrow function types,
//     validated at bind time)
//   - No hidden policy (no retries, no cancellation, no work scheduling)
//
// Workers are single-shot: once joined, a worker is spent, and the next
// Start on its slot invokes the factory again to build a fresh one. The
// bundle never swallows a hook's error; it only guarantees that its own
// state stays consistent around the error.
package threadbundle
