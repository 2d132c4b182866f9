// Package metrics defines the minimal instrument surface the routines
// runtime records into, plus an in-memory provider for tests and a no-op
// default.
package metrics

// Provider constructs instruments used to record runtime activity.
// Instruments are identified by name and reused for the same name.
//
// Keep this interface minimal and stable. If new capabilities are needed
// later, introduce separate optional interfaces rather than expanding this
// surface.
type Provider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
}

// Counter records monotonic counts (spawns, context switches, rendezvous).
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move up and down (live coroutines).
type UpDownCounter interface {
	Add(n int64)
}
