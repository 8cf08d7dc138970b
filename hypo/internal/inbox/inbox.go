package inbox

import (
	"errors"
	"iter"
	"sync"
)

var ErrClosed = errors.New("inbox closed")

// Inbox is an unbounded FIFO queue. Writers never block; readers either range over
// [Inbox.Iter] or take everything that is left with [Inbox.Drain].
type Inbox[M any] struct {
	msgQ   []M
	mx     sync.Mutex
	closed bool
	cond   *sync.Cond
}

// Create an Inbox that will store messages of type [M].
func New[M any]() *Inbox[M] {
	i := &Inbox[M]{
		msgQ: make([]M, 0, 10),
	}
	i.cond = sync.NewCond(&i.mx)
	return i
}

// Add a message to the end of the queue. Returns false if the inbox is closed.
func (i *Inbox[M]) Enqueue(msg M) bool {
	i.mx.Lock()
	defer i.mx.Unlock()

	if i.closed {
		return false
	}

	i.msgQ = append(i.msgQ, msg)
	i.cond.Broadcast()

	return true
}

// Blocks until there is a message to return or the inbox is closed, in which case
// [closed] is [ErrClosed]. Under the hood, this is using [sync.Cond] to sleep callers
// until there are messages.
func (i *Inbox[M]) BlockingPop() (item M, closed error) {
	i.mx.Lock()
	defer i.mx.Unlock()

	for len(i.msgQ) == 0 && !i.closed {
		i.cond.Wait()
	}

	if i.closed {
		return item, ErrClosed
	}

	head := i.msgQ[0]
	i.msgQ = i.msgQ[1:]

	return head, nil
}

// this is an Iterator function that can be used with a range loop like so:
//
//	for item := range ibox.Iter() {
//		handle(item)
//	}
//
// The iterator will exhaust once [Inbox.Drain] closes the inbox; whatever was still
// queued is returned by Drain instead of being yielded.
func (i *Inbox[M]) Iter() iter.Seq[M] {
	return func(yield func(M) bool) {
		for {
			item, closed := i.BlockingPop()
			if closed != nil {
				return
			}

			if !yield(item) {
				return
			}
		}
	}
}

// Return the number of items in the Inbox
func (i *Inbox[M]) Size() int {
	i.mx.Lock()
	defer i.mx.Unlock()

	return len(i.msgQ)
}

// Closes the inbox and returns everything that was still queued, oldest first.
// Calling it again returns nothing.
func (i *Inbox[M]) Drain() []M {
	i.mx.Lock()
	defer i.mx.Unlock()

	result := i.msgQ
	i.msgQ = nil
	if !i.closed {
		i.closed = true
		i.cond.Broadcast()
	}

	return result
}
