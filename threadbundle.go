package threadbundle

import "time"

// Defaults shared across the package
const (
	// DefaultWatchInterval is the default liveness polling interval for Watch
	DefaultWatchInterval = 50 * time.Millisecond

	// DefaultConcurrency is the default bulk-operation concurrency for Manager
	DefaultConcurrency = 10

	// FallbackWorkerCount is returned by OptimalWorkerCount when the
	// platform cannot report hardware parallelism
	FallbackWorkerCount = 2
)

// Stage identifies the lifecycle hook that was running when an error
// occurred
type Stage int

const (
	// StageUnknown represents an unknown lifecycle stage
	StageUnknown Stage = iota
	// StageBeforeStart runs before a worker's goroutine is launched
	StageBeforeStart
	// StageAfterStart runs after a worker's goroutine is launched
	StageAfterStart
	// StageBeforeJoin runs before a worker is joined
	StageBeforeJoin
	// StageAfterJoin runs after a worker is joined
	StageAfterJoin
)

// Stage string constants
const (
	stageUnknownStr     = "unknown"
	stageBeforeStartStr = "before-start"
	stageAfterStartStr  = "after-start"
	stageBeforeJoinStr  = "before-join"
	stageAfterJoinStr   = "after-join"
)

// String returns the string representation of Stage
func (s Stage) String() string {
	switch s {
	case StageBeforeStart:
		return stageBeforeStartStr
	case StageAfterStart:
		return stageAfterStartStr
	case StageBeforeJoin:
		return stageBeforeJoinStr
	case StageAfterJoin:
		return stageAfterJoinStr
	default:
		return stageUnknownStr
	}
}
