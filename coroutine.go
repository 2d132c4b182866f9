package routines

// Task is a coroutine entrypoint. The argument is the opaque value passed to
// Spawn and is delivered on first activation.
type Task func(arg any)

// Coroutine is the handle to one independently-stacked task. Handles stay
// valid after completion and destruction; State reports StateCompleted then.
type Coroutine struct {
	id    int
	entry Task
	arg   any

	state State

	// Intrusive membership in at most one coroutine list (ready queue,
	// receiver wait queue, or join queue). owner is nil iff the coroutine is
	// in none of them.
	owner *clist
	prev  *Coroutine
	next  *Coroutine

	// joiners holds coroutines parked in Join until this one completes or is
	// destroyed.
	joiners clist

	// pendingSend is the message entry referencing this coroutine while it is
	// in StateBlockedSend. Suspend and Destroy use it to cancel the parked
	// send without disturbing the payload.
	pendingSend *message

	// stack is the worker executing this coroutine; nil once the stack has
	// been returned to the free-list.
	stack *stack

	data any
}

// State returns the coroutine's current state tag. It has no side effects.
func (c *Coroutine) State() State {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	return c.state
}

// SetData associates an opaque value with the coroutine.
func (c *Coroutine) SetData(d any) {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	c.data = d
}

// Data returns the value set by SetData, or nil.
func (c *Coroutine) Data() any {
	if c == nil {
		panic(ErrNilCoroutine)
	}
	return c.data
}
