package routines

import "github.com/joeycumines/logiface"

// Logger is the structured logger accepted by WithLogger. A nil logger
// disables tracing; logiface builders no-op on a nil logger.
type Logger = logiface.Logger[logiface.Event]

func (rt *Runtime) traceSpawn(c *Coroutine) {
	rt.config.Logger.Trace().
		Int("coroutine", c.id).
		Int("live", rt.live).
		Log("spawn")
}

func (rt *Runtime) traceExit(c *Coroutine) {
	rt.config.Logger.Trace().
		Int("coroutine", c.id).
		Int("live", rt.live).
		Log("exit")
}

func (rt *Runtime) traceDestroy(c *Coroutine) {
	rt.config.Logger.Debug().
		Int("coroutine", c.id).
		Str("state", c.state.String()).
		Log("destroy")
}

func (rt *Runtime) traceQueueDestroy(q *Queue) {
	rt.config.Logger.Debug().
		Int("readied", rt.ready.len()).
		Log("queue destroy")
}

func (rt *Runtime) traceClose() {
	rt.config.Logger.Debug().Log("close")
}
