package metrics

import "sync/atomic"

// BasicProvider is a simple in-memory implementation of Provider, suitable
// for tests, examples, and lightweight apps. Instruments are created on
// demand by name and reused for the same name.
type BasicProvider struct {
	counters map[string]*basicInstrument
	updowns  map[string]*basicInstrument
}

// NewBasicProvider constructs a new BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters: make(map[string]*basicInstrument),
		updowns:  make(map[string]*basicInstrument),
	}
}

// Counter returns the monotonic counter instrument for the given name.
func (p *BasicProvider) Counter(name string) Counter {
	c, ok := p.counters[name]
	if !ok {
		c = &basicInstrument{}
		p.counters[name] = c
	}
	return c
}

// UpDownCounter returns the up/down counter instrument for the given name.
func (p *BasicProvider) UpDownCounter(name string) UpDownCounter {
	u, ok := p.updowns[name]
	if !ok {
		u = &basicInstrument{}
		p.updowns[name] = u
	}
	return u
}

// Value returns the current value of the named instrument, searching
// counters first, then up/down counters. Unknown names read as zero.
func (p *BasicProvider) Value(name string) int64 {
	if c, ok := p.counters[name]; ok {
		return c.value()
	}
	if u, ok := p.updowns[name]; ok {
		return u.value()
	}
	return 0
}

type basicInstrument struct {
	v atomic.Int64
}

func (i *basicInstrument) Add(n int64)  { i.v.Add(n) }
func (i *basicInstrument) value() int64 { return i.v.Load() }
