package routines

import "errors"

const Namespace = "routines"

var (
	ErrNotCoroutine = errors.New(
		Namespace + ": operation requires a running coroutine",
	)
	ErrNilCoroutine    = errors.New(Namespace + ": nil coroutine")
	ErrNilQueue        = errors.New(Namespace + ": nil queue")
	ErrNilTask         = errors.New(Namespace + ": nil task")
	ErrResumeSelf      = errors.New(Namespace + ": cannot resume the running coroutine")
	ErrResumeCompleted = errors.New(Namespace + ": cannot resume a completed coroutine")
	ErrDestroySelf     = errors.New(Namespace + ": cannot destroy the running coroutine")
	ErrJoinSelf        = errors.New(Namespace + ": cannot join the running coroutine")
	ErrQueueDestroyed  = errors.New(Namespace + ": queue already destroyed")
	ErrRuntimeClosed   = errors.New(Namespace + ": runtime closed")
	ErrCloseNotRoot    = errors.New(Namespace + ": close requires the root flow")
	ErrCloseLive       = errors.New(Namespace + ": close with live coroutines")
)
