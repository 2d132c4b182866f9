package routines

import (
	"sync"

	"github.com/ygrebnov/routines/metrics"
	"github.com/ygrebnov/routines/pool"
)

// Runtime is one cooperative scheduler instance: the ready queue, the
// identity of the running coroutine, the root flow's park slot, and the
// free-list of reusable stacks. Multiple independent runtimes may coexist.
//
// All methods must be called from the runtime's root flow or from one of its
// coroutines; the cooperative handoff of the execution token is the only
// synchronization, so entering a runtime from a foreign goroutine corrupts
// it.
type Runtime struct {
	config config

	// current is the running coroutine; nil while the root flow executes.
	current *Coroutine

	// ready is the strict-FIFO queue of runnable coroutines.
	ready clist

	// rootGate parks the root flow while coroutines run. Capacity one, same
	// token-handoff discipline as stack gates.
	rootGate chan struct{}

	stacks pool.Pool

	live   int // coroutines spawned and not yet completed or destroyed
	nextID int

	spawns     metrics.Counter
	switches   metrics.Counter
	rendezvous metrics.Counter
	liveGauge  metrics.UpDownCounter

	closed    bool
	closeOnce sync.Once
}

// New creates a Runtime configured by the given options. The calling
// goroutine becomes the runtime's root flow.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			panic(Namespace + ": nil option")
		}
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		panic(err)
	}

	rt := &Runtime{
		config:   cfg,
		rootGate: make(chan struct{}, 1),
	}
	rt.stacks = pool.New(
		cfg.MaxIdleStacks,
		func() interface{} { return newStack(rt) },
		func(el interface{}) { close(el.(*stack).gate) },
	)

	rt.spawns = cfg.Metrics.Counter("routines.spawns")
	rt.switches = cfg.Metrics.Counter("routines.switches")
	rt.rendezvous = cfg.Metrics.Counter("routines.rendezvous")
	rt.liveGauge = cfg.Metrics.UpDownCounter("routines.live")

	return rt
}

// Close stops the idle workers held in the stack free-list. It must be
// called from the root flow after every coroutine has completed or been
// destroyed, and executes exactly once. The runtime rejects Spawn afterward.
func (rt *Runtime) Close() {
	if rt.current != nil {
		panic(ErrCloseNotRoot)
	}
	if rt.live != 0 {
		panic(ErrCloseLive)
	}
	rt.closeOnce.Do(func() {
		rt.closed = true
		rt.stacks.Drain(func(el interface{}) { close(el.(*stack).gate) })
		rt.traceClose()
	})
}

// Self returns the running coroutine, or nil from the root flow.
func (rt *Runtime) Self() *Coroutine { return rt.current }

// SetSelfData associates an opaque value with the running coroutine.
// It panics from the root flow.
func (rt *Runtime) SetSelfData(d any) { rt.requireCoroutine().SetData(d) }

// SelfData returns the running coroutine's data value. It panics from the
// root flow.
func (rt *Runtime) SelfData() any { return rt.requireCoroutine().Data() }

// Ready reports how many coroutines are parked on the ready queue.
func (rt *Runtime) Ready() int { return rt.ready.len() }

// IdleStacks reports how many reusable stacks the free-list currently holds.
func (rt *Runtime) IdleStacks() int { return rt.stacks.Size() }

// Spawn creates a coroutine running task(arg) and transfers to it
// immediately. The caller is parked runnable: a coroutine parent is placed
// at the tail of the ready queue and runs again when it reaches the head,
// while the root flow regains control once no coroutine is runnable. A child
// that yields with nothing else ready keeps running. The returned handle stays
// valid until the process exits.
func (rt *Runtime) Spawn(task Task, arg any) *Coroutine {
	if task == nil {
		panic(ErrNilTask)
	}
	if rt.closed {
		panic(ErrRuntimeClosed)
	}

	rt.nextID++
	c := &Coroutine{
		id:    rt.nextID,
		entry: task,
		arg:   arg,
		state: StateRunning,
	}
	c.stack = rt.stacks.Get().(*stack)

	rt.live++
	rt.spawns.Add(1)
	rt.liveGauge.Add(1)
	rt.traceSpawn(c)

	cur := rt.current
	if cur != nil {
		cur.state = StateRunning
		rt.ready.pushBack(cur)
	}
	rt.current = c
	c.stack.gate <- wake{kind: wakeStart, c: c}
	rt.parkFlow(cur)
	return c
}

// Yield hands the execution token to the head of the ready queue. A calling
// coroutine moves to the tail first, giving strict round-robin order. From
// the root flow, Yield runs coroutines until the ready queue drains back to
// root; it is a no-op when nothing is runnable.
func (rt *Runtime) Yield() {
	if rt.current != nil {
		rt.transfer(&rt.ready, StateRunning, nil)
		return
	}
	rt.transfer(nil, StateRunning, nil)
}

// Join parks the calling coroutine until c completes or is destroyed. It
// returns immediately if c is already completed, and panics from the root
// flow or when joining the running coroutine.
func (rt *Runtime) Join(c *Coroutine) {
	cur := rt.requireCoroutine()
	if c == nil {
		panic(ErrNilCoroutine)
	}
	if c == cur {
		panic(ErrJoinSelf)
	}
	if c.state == StateCompleted {
		return
	}
	rt.transfer(&c.joiners, StateBlockedJoin, nil)
}

// Suspend forcibly detaches c from whatever is holding it (the ready queue,
// a receiver wait queue, a join queue, or a pending message entry's sender
// slot) and marks it suspended. Suspending the running coroutine transfers
// away immediately. Suspend is idempotent; a completed coroutine is left
// untouched.
func (rt *Runtime) Suspend(c *Coroutine) {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	if c.state == StateCompleted {
		return
	}
	rt.detach(c)
	c.state = StateSuspended
	if c == rt.current {
		rt.transfer(nil, StateSuspended, nil)
	}
}

// SuspendSelf suspends the running coroutine. It panics from the root flow.
func (rt *Runtime) SuspendSelf() {
	rt.Suspend(rt.requireCoroutine())
}

// Resume detaches c from any queue and pushes it to the tail of the ready
// queue. A receive-blocked coroutine resumed this way observes the
// spurious-wake contract: its Wait or Recv returns a nil payload and a nil
// reply queue. Resume panics on the running coroutine and on a completed
// one.
func (rt *Runtime) Resume(c *Coroutine) {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	if c == rt.current {
		panic(ErrResumeSelf)
	}
	if c.state == StateCompleted {
		panic(ErrResumeCompleted)
	}
	rt.detach(c)
	rt.makeReady(c)
}

// Destroy tears c down: it is detached from any queue (a pending blocked
// send keeps its payload but loses its sender back-reference), its joiners
// are resumed and observe StateCompleted, and its stack is reclaimed into
// the free-list, unwinding the task so that its deferred functions run. A
// completed coroutine only has its joiners drained; destroying the running
// coroutine panics.
func (rt *Runtime) Destroy(c *Coroutine) {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	if c == rt.current {
		panic(ErrDestroySelf)
	}

	alive := c.state != StateCompleted
	if alive {
		rt.detach(c)
		c.state = StateCompleted
	}
	for j := c.joiners.popFront(); j != nil; j = c.joiners.popFront() {
		rt.makeReady(j)
	}
	if alive {
		rt.live--
		rt.liveGauge.Add(-1)
		rt.traceDestroy(c)
		// Unwind the target's worker; it returns its stack to the free-list
		// and hands the token back to this flow.
		c.stack.gate <- wake{kind: wakeKill}
		rt.parkFlow(rt.current)
	}
}

// requireCoroutine returns the running coroutine, panicking from root.
func (rt *Runtime) requireCoroutine() *Coroutine {
	if rt.current == nil {
		panic(ErrNotCoroutine)
	}
	return rt.current
}

// detach surgically removes c from whatever is holding it: its coroutine
// list membership, or the sender slot of a pending message entry. The entry
// itself stays in its queue so a later receive still delivers the payload.
func (rt *Runtime) detach(c *Coroutine) {
	if c.pendingSend != nil {
		c.pendingSend.sender = nil
		c.pendingSend = nil
	}
	if c.owner != nil {
		c.owner.remove(c)
	}
}

// makeReady marks c runnable and pushes it to the ready tail. The caller
// must have detached c already.
func (rt *Runtime) makeReady(c *Coroutine) {
	c.state = StateRunning
	rt.ready.pushBack(c)
}

// transfer parks the current flow into q with the given state, or nowhere
// when q is nil, and hands the execution token to next, falling back to the
// ready head and then to the root flow. It returns when the token comes back.
func (rt *Runtime) transfer(q *clist, st State, next *Coroutine) {
	cur := rt.current
	if cur != nil {
		cur.state = st
		if q != nil {
			q.pushBack(cur)
		}
	}
	if next == nil {
		next = rt.ready.popFront()
	}
	if next == nil && cur == nil {
		return // root handing to root; nothing to switch
	}
	rt.current = next
	rt.switches.Add(1)
	if next != nil {
		next.state = StateRunning
		next.stack.gate <- wake{kind: wakeResume}
	} else {
		rt.rootGate <- struct{}{}
	}
	rt.parkFlow(cur)
}

// exit runs on the finishing coroutine's worker, after the entrypoint
// returned (killed false) or unwound under Destroy (killed true). The worker
// parks itself into the free-list before handing the token onward; the
// capacity-1 gate makes that safe even if the next flow rebinds this stack
// immediately.
func (rt *Runtime) exit(c *Coroutine, killed bool) {
	s := c.stack
	c.stack = nil
	if killed {
		rt.stacks.Put(s)
		rt.wakeFlow(rt.current)
		return
	}

	for j := c.joiners.popFront(); j != nil; j = c.joiners.popFront() {
		rt.makeReady(j)
	}
	c.state = StateCompleted
	rt.live--
	rt.liveGauge.Add(-1)
	rt.traceExit(c)
	rt.stacks.Put(s)

	next := rt.ready.popFront()
	rt.current = next
	rt.switches.Add(1)
	if next != nil {
		next.state = StateRunning
		next.stack.gate <- wake{kind: wakeResume}
	} else {
		rt.rootGate <- struct{}{}
	}
}

// parkFlow blocks the given flow (nil for root) until the token comes back.
func (rt *Runtime) parkFlow(cur *Coroutine) {
	if cur != nil {
		cur.stack.sleep()
	} else {
		<-rt.rootGate
	}
}

// wakeFlow hands the token to the given flow (nil for root) without parking
// the caller; used by the kill-unwind path, whose worker then re-parks in
// its run loop.
func (rt *Runtime) wakeFlow(c *Coroutine) {
	if c != nil {
		c.stack.gate <- wake{kind: wakeResume}
	} else {
		rt.rootGate <- struct{}{}
	}
}
