package routines

import "github.com/ygrebnov/routines/metrics"

// defaultConfig centralizes default values for config. These defaults are
// the base the New options builder starts from.
func defaultConfig() config {
	return config{
		MaxIdleStacks: 0, // retain every stack
		Metrics:       metrics.NewNoopProvider(),
		Logger:        nil, // disabled
	}
}

// validateConfig performs lightweight invariants checks.
// It returns nil for all currently valid states; reserved for future validation expansions.
func validateConfig(cfg *config) error {
	// MaxIdleStacks == 0 -> unbounded free-list; >0 -> capped retention.
	// A nil Logger disables tracing; Metrics always has a provider by the
	// time validation runs.
	return nil
}
