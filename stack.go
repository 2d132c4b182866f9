package routines

// wakeKind discriminates why a parked worker is handed the execution token.
type wakeKind uint8

const (
	// wakeStart binds a freshly spawned coroutine to the worker and runs its
	// entrypoint from the top of the stack.
	wakeStart wakeKind = iota

	// wakeResume continues the bound coroutine at its last suspension point.
	wakeResume

	// wakeKill unwinds the bound coroutine and returns the worker to the
	// free-list. Sent by Destroy.
	wakeKill
)

type wake struct {
	kind wakeKind
	c    *Coroutine
}

// unwindSentinel is the panic value used to unwind a destroyed coroutine's
// stack. It is raised at the suspension point and recovered by the worker's
// run loop; deferred functions of the task run during unwinding.
type unwindSentinel struct{}

// stack is one reusable coroutine stack: a dedicated worker goroutine that
// alternates between parking in the free-list and executing a bound
// coroutine. The gate carries the execution token; its capacity of one lets
// the token be handed over before the receiving side has parked, so wake and
// sleep never deadlock regardless of OS-level interleaving.
type stack struct {
	rt   *Runtime
	gate chan wake
}

func newStack(rt *Runtime) *stack {
	s := &stack{rt: rt, gate: make(chan wake, 1)}
	go s.loop()
	return s
}

// loop is the first-call trampoline. Each received wakeStart activates a new
// coroutine on this stack; the loop exits when the gate is closed, which
// happens when the free-list discards the stack.
func (s *stack) loop() {
	for w := range s.gate {
		s.enter(w.c)
	}
}

// enter runs one coroutine to completion or to destruction, then executes
// the exit sequence. Panics other than the unwind sentinel propagate and
// crash the process, matching the fail-loud contract.
func (s *stack) enter(c *Coroutine) {
	killed := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(unwindSentinel); !ok {
					panic(r)
				}
				killed = true
			}
		}()
		c.entry(c.arg)
	}()
	s.rt.exit(c, killed)
}

// sleep parks the calling worker until the execution token is handed back.
// It panics with the unwind sentinel when the coroutine is being destroyed.
func (s *stack) sleep() {
	if w := <-s.gate; w.kind == wakeKill {
		panic(unwindSentinel{})
	}
}
