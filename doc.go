// Package routines provides a single-threaded cooperative multitasking
// runtime built around independently-stacked coroutines and synchronous
// message-passing queues.
//
// # Scheduling model
//
// A Runtime owns exactly one execution token. Concurrency is expressed by
// coroutines handing the token to each other at explicit points: Spawn (the
// child runs at once), Yield, Join, SuspendSelf, a send that meets a parked
// receiver (the receiver runs first), a blocking queue operation that finds
// no immediate rendezvous, Destroy of a live coroutine (its deferred
// functions run while it unwinds), or returning from the entrypoint.
// Nothing is preempted and nothing runs in
// parallel; the runtime is not safe for use from goroutines that are not the
// root flow or coroutines of that runtime.
//
// # Stacks
//
// Each coroutine executes on its own worker goroutine, so call stacks survive
// suspension points at any depth. Workers of finished coroutines are parked
// in a free-list and reused by later Spawn calls instead of being discarded.
//
// # Queues
//
// A Queue pairs a FIFO of pending messages with a FIFO of parked receivers;
// at most one side is ever non-empty. Send blocks until a receiver consumes
// the message, Signal does not block, Wait blocks for a message, Read polls,
// and Call/Recv/Post carry a reply queue for request/response exchanges.
//
// # Spurious wakes
//
// A receiver woken by Suspend, Resume, or Queue.Destroy rather than by a real
// message returns a nil payload and a nil reply queue. Callers that park in
// Wait or Recv must treat nil as "no message", not as a delivered value.
//
// # Contract violations
//
// Misuse is a programmer error and panics with one of the package sentinel
// errors: queue operations and Join require a running coroutine, Resume
// rejects the running and completed coroutines, nil handles and queues are
// rejected everywhere. See errors.go for the full set.
package routines
