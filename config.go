package routines

import "github.com/ygrebnov/routines/metrics"

// config holds Runtime configuration.
type config struct {
	// MaxIdleStacks caps how many reusable coroutine stacks the free-list
	// retains; stacks beyond the cap are discarded on release.
	// Zero (default) retains all of them.
	MaxIdleStacks uint

	// Metrics provides the instruments the runtime records into.
	// Default: a no-op provider.
	Metrics metrics.Provider

	// Logger receives structured trace events for scheduling operations.
	// Default: nil (logging disabled).
	Logger *Logger
}
