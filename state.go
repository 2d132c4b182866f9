package routines

// State identifies the lifecycle stage of a coroutine.
type State uint8

const (
	// StateCompleted means the entrypoint has returned, or the coroutine has
	// been destroyed.
	StateCompleted State = iota

	// StateSuspended means the coroutine holds no queue membership and will
	// not run until it is resumed.
	StateSuspended

	// StateRunning means the coroutine either holds the execution token or is
	// parked on the ready queue awaiting its turn.
	StateRunning

	// StateBlockedSend means the coroutine is parked inside a blocking send,
	// referenced by a pending message entry.
	StateBlockedSend

	// StateBlockedRecv means the coroutine is parked on a queue's receiver
	// wait queue.
	StateBlockedRecv

	// StateBlockedJoin means the coroutine is parked on another coroutine's
	// join queue.
	StateBlockedJoin
)

var stateNames = [...]string{
	StateCompleted:   "completed",
	StateSuspended:   "suspended",
	StateRunning:     "running",
	StateBlockedSend: "blocked-send",
	StateBlockedRecv: "blocked-recv",
	StateBlockedJoin: "blocked-join",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
