package routines

import "sync"

// message is one pending entry in a Queue. sender is non-nil only while a
// blocking sender is parked on the entry; reply carries the queue attached
// by Call and Post. Entries are recycled through messagePool.
type message struct {
	payload any
	sender  *Coroutine
	reply   *Queue
	next    *message
}

var messagePool = sync.Pool{New: func() any { return new(message) }}

func newMessage(payload any, sender *Coroutine, reply *Queue) *message {
	m := messagePool.Get().(*message)
	m.payload = payload
	m.sender = sender
	m.reply = reply
	m.next = nil
	return m
}

func freeMessage(m *message) {
	m.payload = nil
	m.sender = nil
	m.reply = nil
	m.next = nil
	messagePool.Put(m)
}

// Queue is a synchronous message queue: a FIFO of pending messages paired
// with a FIFO of parked receivers. At most one of the two is non-empty at
// any quiescent point; a sender meeting a parked receiver rendezvouses
// immediately.
//
// The send and receive operations must be called from a coroutine of the
// owning runtime; Destroy, Len, and Receivers may also be called from the
// root flow.
type Queue struct {
	rt *Runtime

	// Pending messages, singly linked with a tail cursor for O(1) append.
	head *message
	tail *message

	// Coroutines parked in StateBlockedRecv.
	recvers clist

	pending   int
	destroyed bool
}

// NewQueue allocates an empty message queue owned by the runtime.
func (rt *Runtime) NewQueue() *Queue {
	if rt.closed {
		panic(ErrRuntimeClosed)
	}
	return &Queue{rt: rt}
}

// Len reports the number of pending, unreceived messages.
func (q *Queue) Len() int {
	q.check()
	return q.pending
}

// Receivers reports the number of coroutines parked waiting to receive.
func (q *Queue) Receivers() int {
	q.check()
	return q.recvers.len()
}

// Send delivers m and blocks until a receiver consumes it. If a receiver is
// already parked the rendezvous is immediate and the caller stays runnable;
// otherwise the caller parks in StateBlockedSend until the message is
// received.
func (q *Queue) Send(m any) {
	cur := q.guard()
	q.sendImpl(m, cur, nil)
}

// Signal delivers m without blocking.
func (q *Queue) Signal(m any) {
	q.guard()
	q.sendImpl(m, nil, nil)
}

// Wait blocks until a message is available and returns its payload. A nil
// return means a spurious wake: the caller was resumed by Suspend, Resume,
// or Destroy rather than by a sender.
func (q *Queue) Wait() any {
	q.guard()
	m, _ := q.recvImpl()
	return m
}

// Read polls the queue: it returns the head payload, or nil when no message
// is pending. Read never blocks.
func (q *Queue) Read() any {
	q.guard()
	if q.head == nil {
		return nil
	}
	m, _ := q.recvImpl()
	return m
}

// Call delivers m carrying reply, then blocks receiving on reply and returns
// the response payload. The send half behaves like Send; the receive half
// like Wait, including the spurious-wake contract.
func (q *Queue) Call(m any, reply *Queue) any {
	cur := q.guard()
	if reply == nil {
		panic(ErrNilQueue)
	}
	reply.check()
	q.sendImpl(m, cur, reply)
	r, _ := reply.recvImpl()
	return r
}

// Recv blocks until a message is available and returns its payload together
// with the reply queue attached by Call or Post, if any. On a spurious wake
// both results are nil.
func (q *Queue) Recv() (any, *Queue) {
	q.guard()
	return q.recvImpl()
}

// Post delivers m carrying reply, without blocking.
func (q *Queue) Post(m any, reply *Queue) {
	q.guard()
	if reply == nil {
		panic(ErrNilQueue)
	}
	reply.check()
	q.sendImpl(m, nil, reply)
}

// Destroy discards every pending message and wakes every parked coroutine,
// then marks the queue unusable. Parked receivers resume in FIFO order and
// observe the spurious-wake contract. Blocked senders whose payloads are
// discarded are resumed the same way rather than orphaned: a permanently
// parked sender would leak its stack. Destroy may be called from the root
// flow and is idempotent.
func (q *Queue) Destroy() {
	if q == nil {
		panic(ErrNilQueue)
	}
	if q.destroyed {
		return
	}
	q.destroyed = true
	rt := q.rt

	for e := q.pop(); e != nil; e = q.pop() {
		if s := e.sender; s != nil {
			e.sender = nil
			s.pendingSend = nil
			rt.makeReady(s)
		}
		freeMessage(e)
	}
	for rcv := q.recvers.popFront(); rcv != nil; rcv = q.recvers.popFront() {
		rt.makeReady(rcv)
	}
	rt.traceQueueDestroy(q)
}

// guard validates the queue and returns the running coroutine; every
// primitive except Destroy is coroutine-only.
func (q *Queue) guard() *Coroutine {
	q.check()
	return q.rt.requireCoroutine()
}

func (q *Queue) check() {
	if q == nil {
		panic(ErrNilQueue)
	}
	if q.destroyed {
		panic(ErrQueueDestroyed)
	}
}

func (q *Queue) push(m *message) {
	if q.tail != nil {
		q.tail.next = m
	} else {
		q.head = m
	}
	q.tail = m
	q.pending++
}

func (q *Queue) pop() *message {
	m := q.head
	if m == nil {
		return nil
	}
	q.head = m.next
	if q.head == nil {
		q.tail = nil
	}
	m.next = nil
	q.pending--
	return m
}

// sendImpl admits one message. With a parked receiver the rendezvous is
// immediate: the entry is enqueued senderless, the head receiver is resumed
// with a direct transfer, and the sender stays runnable at the ready tail.
// No third coroutine can observe the receiver still parked. Without a
// receiver the entry is enqueued and a blocking sender parks held only
// through the entry's sender slot.
func (q *Queue) sendImpl(payload any, sender *Coroutine, reply *Queue) {
	rt := q.rt
	if rcv := q.recvers.popFront(); rcv != nil {
		q.push(newMessage(payload, nil, reply))
		if cur := rt.current; cur.owner != nil {
			panic(Namespace + ": rendezvous with a sender already parked on a queue")
		}
		rt.rendezvous.Add(1)
		rt.transfer(&rt.ready, StateRunning, rcv)
		return
	}

	e := newMessage(payload, sender, reply)
	q.push(e)
	if sender != nil {
		sender.pendingSend = e
		rt.transfer(nil, StateBlockedSend, nil)
	}
}

// recvImpl consumes one message, parking the caller first when none is
// pending. A wake that finds the queue still empty is spurious and yields
// nil results. Consuming an entry with a parked sender readies that sender;
// no immediate switch happens on its behalf.
func (q *Queue) recvImpl() (any, *Queue) {
	rt := q.rt
	if q.head == nil {
		rt.transfer(&q.recvers, StateBlockedRecv, nil)
		if q.head == nil {
			return nil, nil
		}
	}

	e := q.pop()
	if s := e.sender; s != nil {
		e.sender = nil
		s.pendingSend = nil
		rt.makeReady(s)
	}
	payload, reply := e.payload, e.reply
	freeMessage(e)
	return payload, reply
}
