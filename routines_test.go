package routines

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/routines/metrics"
)

func TestSpawn_RunsChildImmediately(t *testing.T) {
	rt := New()
	defer rt.Close()

	var order []string
	c := rt.Spawn(func(arg any) {
		order = append(order, arg.(string))
	}, "child")
	order = append(order, "root")

	require.Equal(t, []string{"child", "root"}, order)
	require.Equal(t, StateCompleted, c.State())
}

func TestSpawn_ParentCoroutineIsParkedRunnable(t *testing.T) {
	rt := New()
	defer rt.Close()

	var order []string
	rt.Spawn(func(any) {
		order = append(order, "parent-before")
		rt.Spawn(func(any) {
			order = append(order, "child")
			rt.Yield() // parent is at the ready head and runs next
			order = append(order, "child-after")
		}, nil)
		order = append(order, "parent-after")
	}, nil)

	require.Equal(t,
		[]string{"parent-before", "child", "parent-after", "child-after"},
		order)
}

func TestYield_SelfWhenAlone(t *testing.T) {
	rt := New()
	defer rt.Close()

	var n int
	rt.Spawn(func(any) {
		for i := 0; i < 3; i++ {
			n++
			rt.Yield() // sole runnable coroutine resumes itself
		}
	}, nil)

	require.Equal(t, 3, n)
}

func TestYield_FromRootDrainsReady(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	a := rt.Spawn(func(any) { q.Wait() }, nil)
	b := rt.Spawn(func(any) { q.Wait() }, nil)

	rt.Resume(a)
	rt.Resume(b)
	require.Equal(t, 2, rt.Ready())

	rt.Yield()
	require.Equal(t, 0, rt.Ready())
	require.Equal(t, StateCompleted, a.State())
	require.Equal(t, StateCompleted, b.State())
	q.Destroy()
}

func TestJoin_WaitsForCompletion(t *testing.T) {
	rt := New()
	defer rt.Close()

	var order []string
	rt.Spawn(func(any) {
		target := rt.Spawn(func(any) {
			order = append(order, "target-1")
			rt.Yield()
			order = append(order, "target-2")
		}, nil)
		require.Equal(t, StateRunning, target.State())
		rt.Join(target)
		order = append(order, "joiner")
		require.Equal(t, StateCompleted, target.State())
	}, nil)

	require.Equal(t, []string{"target-1", "target-2", "joiner"}, order)
}

func TestJoin_CompletedTargetReturnsImmediately(t *testing.T) {
	rt := New()
	defer rt.Close()

	target := rt.Spawn(func(any) {}, nil)
	require.Equal(t, StateCompleted, target.State())

	joined := false
	rt.Spawn(func(any) {
		rt.Join(target)
		joined = true
	}, nil)
	require.True(t, joined)
}

func TestSuspend_IsIdempotent(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	a := rt.Spawn(func(any) { q.Wait() }, nil)
	require.Equal(t, StateBlockedRecv, a.State())
	require.Equal(t, 1, q.Receivers())

	rt.Suspend(a)
	rt.Suspend(a)
	require.Equal(t, StateSuspended, a.State())
	require.Nil(t, a.owner)
	require.Equal(t, 0, q.Receivers())

	rt.Resume(a)
	rt.Yield()
	require.Equal(t, StateCompleted, a.State())
	q.Destroy()
}

func TestSuspendSelf_ParksUntilResumed(t *testing.T) {
	rt := New()
	defer rt.Close()

	var order []string
	a := rt.Spawn(func(any) {
		order = append(order, "before")
		rt.SuspendSelf()
		order = append(order, "after")
	}, nil)

	require.Equal(t, []string{"before"}, order)
	require.Equal(t, StateSuspended, a.State())

	rt.Resume(a)
	rt.Yield()
	require.Equal(t, []string{"before", "after"}, order)
	require.Equal(t, StateCompleted, a.State())
}

func TestResume_MovesReadyCoroutineToTail(t *testing.T) {
	rt := New()
	defer rt.Close()

	var order []string
	a := rt.Spawn(func(any) { rt.SuspendSelf(); order = append(order, "a") }, nil)
	b := rt.Spawn(func(any) { rt.SuspendSelf(); order = append(order, "b") }, nil)

	rt.Resume(a)
	rt.Resume(b)
	rt.Resume(a) // a detaches from the ready queue and re-enters at the tail

	rt.Yield()
	require.Equal(t, []string{"b", "a"}, order)
}

func TestDestroy_ResumesJoiners(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	target := rt.Spawn(func(any) { q.Wait() }, nil)

	var observed State
	rt.Spawn(func(any) {
		rt.Join(target)
		observed = target.State()
	}, nil)

	rt.Destroy(target)
	rt.Yield()
	require.Equal(t, StateCompleted, observed)
	q.Destroy()
}

func TestDestroy_RunsDeferredFunctions(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	cleaned := false
	target := rt.Spawn(func(any) {
		defer func() { cleaned = true }()
		q.Wait()
		q.Wait()
	}, nil)

	rt.Destroy(target)
	require.True(t, cleaned)
	require.Equal(t, StateCompleted, target.State())
	q.Destroy()
}

func TestDestroy_FreeListAccounting(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	a := rt.Spawn(func(any) { q.Wait() }, nil)
	b := rt.Spawn(func(any) { q.Wait() }, nil)
	require.Equal(t, 0, rt.IdleStacks()) // both stacks are in use

	rt.Destroy(a)
	rt.Destroy(b)
	require.Equal(t, 2, rt.IdleStacks())

	// A fresh spawn reuses a pooled stack and returns it on completion.
	rt.Spawn(func(any) {}, nil)
	require.Equal(t, 2, rt.IdleStacks())
	q.Destroy()
}

func TestMaxIdleStacks_CapsRetention(t *testing.T) {
	rt := New(WithMaxIdleStacks(1))
	defer rt.Close()

	q := rt.NewQueue()
	a := rt.Spawn(func(any) { q.Wait() }, nil)
	b := rt.Spawn(func(any) { q.Wait() }, nil)

	rt.Destroy(a)
	rt.Destroy(b)
	require.Equal(t, 1, rt.IdleStacks())
	q.Destroy()
}

func TestSelfAndData(t *testing.T) {
	rt := New()
	defer rt.Close()

	require.Nil(t, rt.Self())

	var self *Coroutine
	c := rt.Spawn(func(any) {
		self = rt.Self()
		rt.SetSelfData("payload")
		require.Equal(t, "payload", rt.SelfData())
	}, nil)

	require.Same(t, c, self)
	require.Equal(t, "payload", c.Data())

	c.SetData(42)
	require.Equal(t, 42, c.Data())
}

func TestMisuse_Panics(t *testing.T) {
	rt := New()
	defer rt.Close()

	q := rt.NewQueue()
	defer q.Destroy()

	// Root-flow violations.
	require.PanicsWithValue(t, ErrNotCoroutine, func() { q.Send(1) })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { q.Signal(1) })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { _ = q.Wait() })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { _ = q.Read() })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { rt.Join(&Coroutine{}) })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { rt.SuspendSelf() })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { _ = rt.SelfData() })
	require.PanicsWithValue(t, ErrNotCoroutine, func() { rt.SetSelfData(nil) })

	// Nil arguments.
	require.PanicsWithValue(t, ErrNilTask, func() { rt.Spawn(nil, nil) })
	require.PanicsWithValue(t, ErrNilCoroutine, func() { rt.Suspend(nil) })
	require.PanicsWithValue(t, ErrNilCoroutine, func() { rt.Resume(nil) })
	require.PanicsWithValue(t, ErrNilCoroutine, func() { rt.Destroy(nil) })
	var nilQ *Queue
	require.PanicsWithValue(t, ErrNilQueue, func() { _ = nilQ.Wait() })
	require.PanicsWithValue(t, ErrNilQueue, func() { nilQ.Destroy() })

	// Resume preconditions.
	done := rt.Spawn(func(any) {}, nil)
	require.PanicsWithValue(t, ErrResumeCompleted, func() { rt.Resume(done) })
	rt.Spawn(func(any) {
		require.PanicsWithValue(t, ErrResumeSelf, func() { rt.Resume(rt.Self()) })
		require.PanicsWithValue(t, ErrJoinSelf, func() { rt.Join(rt.Self()) })
		require.PanicsWithValue(t, ErrDestroySelf, func() { rt.Destroy(rt.Self()) })
	}, nil)
}

func TestClose_RejectsLiveCoroutinesAndLateSpawns(t *testing.T) {
	rt := New()

	q := rt.NewQueue()
	a := rt.Spawn(func(any) { q.Wait() }, nil)
	require.PanicsWithValue(t, ErrCloseLive, func() { rt.Close() })

	rt.Destroy(a)
	q.Destroy()
	rt.Close()
	require.Equal(t, 0, rt.IdleStacks())
	require.PanicsWithValue(t, ErrRuntimeClosed, func() { rt.Spawn(func(any) {}, nil) })
}

func TestMetrics_RecordsSpawnsAndSwitches(t *testing.T) {
	p := metrics.NewBasicProvider()
	rt := New(WithMetrics(p))
	defer rt.Close()

	rt.Spawn(func(any) { rt.Yield() }, nil)
	rt.Spawn(func(any) {}, nil)

	require.Equal(t, int64(2), p.Value("routines.spawns"))
	require.Equal(t, int64(0), p.Value("routines.live"))
	require.Greater(t, p.Value("routines.switches"), int64(0))
}
