/*
the [testcase] is intended to structure tests that use hypotheses.

The [Case] object contains three methods--[Case.Arrange], [Case.Act] and [Case.Assert]--that are intended to be called
in order.

# Example

	tc := testcase.New(t, testcase.Timeout(3*time.Second))

	var h *hypo.Hypothesis[Event]
	// declare hypotheses here and register them with WaitOn
	tc.Arrange(func() {
		h = hypo.For[Event]().AtLeast(match.Eq(Created), 1)
		tc.WaitOn(h)
		bus.Subscribe(func(e Event) { _ = h.Test(e) })
	})

	// execute the system under test
	tc.Act(func() {
		svc.CreateOrder(ctx, order)
	})

	// Any assertions that should be run AFTER every hypothesis has been validated.
	tc.Assert(func() {
		assert.Equal(t, svc.Orders(), 1)
	})
*/
package testcase

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/uberbrodt/hypo-go/chronos"
)

// how long [Case.Assert] lets each hypothesis wait for evidence, unless the test's
// own deadline is closer.
var DefaultTimeout time.Duration = chronos.Dur("5s")

// floor for a timeout shortened by the test deadline. Validators treat a timeout <= 0 as
// "use the default", which would outlive the test.
var minTimeout = chronos.Dur("10ms")

// Making an interface for [testing.T] so that we can test the Case
//
//go:generate mockgen -destination ../internal/mock/tlike.go -package mock . TLike
type TLike interface {
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
	Helper()
	Deadline() (time.Time, bool)
}

// Validator is anything [Case.Assert] should validate, usually a [hypo.Hypothesis].
type Validator interface {
	Validate(timeout time.Duration) error
}

type options struct {
	timeout time.Duration
	noFail  bool
}

type Opt func(o options) options

// How long each registered [Validator] waits for evidence. See [DefaultTimeout]
func Timeout(d time.Duration) Opt {
	return func(o options) options {
		o.timeout = d
		return o
	}
}

// Set this if you do not want [Case.Assert] to call [testing.T.Errorf] for failed
// validations. Inspect [Case.Errors] instead.
func NoFail() Opt {
	return func(o options) options {
		o.noFail = true
		return o
	}
}

type Case struct {
	t          TLike
	opts       options
	validators []Validator
	errs       []error
	mx         sync.Mutex
}

// Creates a Case. If the test has a deadline (the '-timeout' flag) that is closer than
// [DefaultTimeout], the timeout is shortened to end a second before it, but never below
// a few milliseconds.
func New(t TLike, opts ...Opt) *Case {
	o := options{timeout: DefaultTimeout}

	if tout, ok := t.Deadline(); ok {
		testExit := time.Until(tout) - time.Second
		if testExit < o.timeout {
			testExit = max(testExit, minTimeout)
			t.Logf("-timeout less than DefaultTimeout, adjusting: %s", testExit)
			o.timeout = testExit
		}
	}

	for _, f := range opts {
		o = f(o)
	}

	return &Case{t: t, opts: o}
}

func (c *Case) Arrange(f func()) {
	f()
}

func (c *Case) Act(f func()) {
	f()
}

// Validates every registered [Validator] concurrently, reports each failure, then runs [f].
func (c *Case) Assert(f func()) {
	c.t.Helper()

	c.mx.Lock()
	validators := make([]Validator, len(c.validators))
	copy(validators, c.validators)
	c.mx.Unlock()

	results := make([]error, len(validators))
	var g errgroup.Group
	for i, v := range validators {
		g.Go(func() error {
			results[i] = v.Validate(c.opts.timeout)
			return results[i]
		})
	}
	if err := g.Wait(); err != nil {
		c.t.Logf("validation finished with failures, first: %v", err)
	}

	for i, err := range results {
		if err == nil {
			continue
		}
		c.mx.Lock()
		c.errs = append(c.errs, err)
		c.mx.Unlock()

		if !c.opts.noFail {
			c.t.Errorf("%s", fmt.Sprintf("[%v] %v", validators[i], err))
		}
	}

	f()
}

// Register a [Validator] that must be validated before the [Assert] func runs.
func (c *Case) WaitOn(v Validator) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.validators = append(c.validators, v)
}

// The validation errors collected by [Case.Assert].
func (c *Case) Errors() []error {
	c.mx.Lock()
	defer c.mx.Unlock()

	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

func (c *Case) Timeout() time.Duration {
	return c.opts.timeout
}
