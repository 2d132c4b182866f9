package routines

import "github.com/ygrebnov/routines/metrics"

// Option configures a Runtime created by New.
type Option func(*config)

// WithMaxIdleStacks caps how many reusable coroutine stacks the runtime
// retains in its free-list (must be > 0; the default is unbounded
// retention). Stacks beyond the cap are discarded when their coroutine
// finishes.
func WithMaxIdleStacks(n uint) Option {
	return func(cfg *config) {
		if n == 0 {
			panic(Namespace + ": WithMaxIdleStacks requires n > 0")
		}
		cfg.MaxIdleStacks = n
	}
}

// WithMetrics records runtime activity (spawns, context switches,
// rendezvous, live coroutines) into instruments built by the provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) {
		if p == nil {
			panic(Namespace + ": WithMetrics requires a provider")
		}
		cfg.Metrics = p
	}
}

// WithLogger emits structured trace events for scheduling operations
// through the given logger. Tracing is disabled by default.
func WithLogger(l *Logger) Option {
	return func(cfg *config) { cfg.Logger = l }
}
