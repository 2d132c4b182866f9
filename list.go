package routines

// clist is an intrusive doubly-linked list of coroutines. The link fields and
// the back-pointer to the owning list live inside the Coroutine record, which
// makes removal from an unknown position O(1) and lets membership be checked
// without traversal. A coroutine belongs to at most one clist at a time; both
// pushBack and remove enforce that.
type clist struct {
	head *Coroutine
	tail *Coroutine
}

func (l *clist) empty() bool { return l.head == nil }

// len traverses the list; it exists for introspection and tests, not for the
// scheduling hot path.
func (l *clist) len() int {
	n := 0
	for c := l.head; c != nil; c = c.next {
		n++
	}
	return n
}

func (l *clist) pushBack(c *Coroutine) {
	if c.owner != nil {
		panic(Namespace + ": coroutine is already a member of a queue")
	}
	c.owner = l
	c.prev = l.tail
	c.next = nil
	if l.tail != nil {
		l.tail.next = c
	} else {
		l.head = c
	}
	l.tail = c
}

func (l *clist) popFront() *Coroutine {
	c := l.head
	if c == nil {
		return nil
	}
	l.remove(c)
	return c
}

func (l *clist) remove(c *Coroutine) {
	if c.owner != l {
		panic(Namespace + ": coroutine is not a member of this queue")
	}
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		l.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		l.tail = c.prev
	}
	c.owner = nil
	c.prev = nil
	c.next = nil
}
