// Package feed connects asynchronous producers to a hypothesis.
//
// A [Feed] is handed to code that emits values through a callback. [Feed.Send] never
// blocks the producer: values are queued and a single goroutine tests them against the
// target in the order they were sent.
//
//	h := hypo.For[Event]().AtLeast(match.Eq(Created), 1)
//	f := feed.New[Event](h)
//	bus.Subscribe(func(e Event) { f.Send(e) })
//
//	err := h.Validate(time.Second)
//	_ = f.Close()
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rs/xid"

	"github.com/uberbrodt/hypo-go/hypo/internal/inbox"
)

// Tester receives values one at a time. It is satisfied by [hypo.Hypothesis].
type Tester[T any] interface {
	Test(v T) error
}

type options struct {
	name   string
	logger *slog.Logger
}

type Opt func(o options) options

// Set a name for the feed, that will be used in log messages
func Name(name string) Opt {
	return func(o options) options {
		o.name = name
		return o
	}
}

func SetLogger(logger *slog.Logger) Opt {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

type Feed[T any] struct {
	target   Tester[T]
	queue    *inbox.Inbox[T]
	stopped  chan struct{}
	errs     []error
	errsMx   sync.Mutex
	once     sync.Once
	closeErr error
	log      *slog.Logger
}

// Starts a feed that tests every value sent to it against [target].
func New[T any](target Tester[T], opts ...Opt) *Feed[T] {
	o := options{name: fmt.Sprintf("%s-feed", xid.New().String())}
	for _, f := range opts {
		o = f(o)
	}

	f := &Feed[T]{
		target:  target,
		queue:   inbox.New[T](),
		stopped: make(chan struct{}),
	}
	if o.logger != nil {
		f.log = o.logger
	} else {
		f.log = slog.With("hypo.feed", o.name)
	}

	go f.run()
	return f
}

func (f *Feed[T]) run() {
	defer close(f.stopped)

	for v := range f.queue.Iter() {
		f.test(v)
	}
}

func (f *Feed[T]) test(v T) {
	if err := f.target.Test(v); err != nil {
		f.log.Warn("value rejected", "value", v, "error", err)
		f.errsMx.Lock()
		f.errs = append(f.errs, err)
		f.errsMx.Unlock()
	}
}

// Queues [v] for testing. Never blocks; returns false once the feed is closed.
func (f *Feed[T]) Send(v T) bool {
	return f.queue.Enqueue(v)
}

// Number of values sent but not yet tested.
func (f *Feed[T]) Pending() int {
	return f.queue.Size()
}

// Stops accepting values, tests everything still queued in order and waits for the
// feed's goroutine to exit. Returns every error the target returned over the feed's
// lifetime, joined. Calling Close again returns the same result.
func (f *Feed[T]) Close() error {
	f.once.Do(func() {
		rest := f.queue.Drain()
		<-f.stopped
		for _, v := range rest {
			f.test(v)
		}

		f.errsMx.Lock()
		f.closeErr = errors.Join(f.errs...)
		f.errsMx.Unlock()
		f.log.Debug("feed closed", "drained", len(rest))
	})
	return f.closeErr
}

// Tests every value received from [ch] against [target] until [ch] is closed or [ctx]
// is done. Returns ctx.Err() when cancelled, joined with any errors from [target].
func FromChannel[T any](ctx context.Context, ch <-chan T, target Tester[T]) error {
	var errs []error
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return errors.Join(errs...)
			}
			if err := target.Test(v); err != nil {
				errs = append(errs, err)
			}
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		}
	}
}
