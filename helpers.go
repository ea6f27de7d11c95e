package threadbundle

import (
	"bytes"
	"runtime"
	"strconv"
)

// IsAlive reports whether w is currently executing, returning false for a
// nil worker.
func IsAlive(w *Worker) bool {
	if w == nil {
		return false
	}
	return w.Alive()
}

// GoroutineID returns the runtime's numeric identifier for the calling
// goroutine. The runtime does not expose this directly, so it is parsed
// from the first line of the goroutine's stack trace
// ("goroutine 123 [running]:"). The value is opaque: useful for log
// correlation and equality checks, nothing else.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// OptimalWorkerCount suggests a worker count for the current system: one
// more than the hardware parallelism, or FallbackWorkerCount when the
// platform reports none.
func OptimalWorkerCount() int {
	if n := runtime.NumCPU(); n > 0 {
		return n + 1
	}
	return FallbackWorkerCount
}
