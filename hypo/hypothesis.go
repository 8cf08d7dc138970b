// Package hypo lets a test declare expectations about values that arrive
// asynchronously, feed each value in as it is observed, and then validate every
// expectation at once with a timeout.
//
// # Example
//
//	h := hypo.For[string]().
//		All(match.Not(match.Eq("b"))). // an observer, sees every value
//		AtLeast(match.Eq("a"), 2)
//
//	subscribe(func(v string) { _ = h.Test(v) })
//
//	if err := h.Validate(time.Second); err != nil {
//		t.Fatal(err)
//	}
//
// A hypothesis is single use: once validated it rejects further values.
package hypo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/uberbrodt/hypo-go/chronos"
	"github.com/uberbrodt/hypo-go/hypo/experiment"
	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/internal/gate"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

type Hypothesis[T any] struct {
	name       string
	set        *experiment.Set[T]
	gate       *gate.Gate
	log        *slog.Logger
	validating bool
	finalized  bool
	mx         sync.Mutex
}

// Declares a hypothesis over values of type [T]. Attach experiments with the builder
// methods, which all return the same handle.
func For[T any](opts ...Opt) *Hypothesis[T] {
	o := options{
		name:  fmt.Sprintf("%s-hypothesis", xid.New().String()),
		clock: chronos.Real(),
	}
	for _, f := range opts {
		o = f(o)
	}

	h := &Hypothesis[T]{
		name: o.name,
		set:  experiment.NewSet[T](),
		gate: gate.New(o.clock),
	}
	if o.logger != nil {
		h.log = o.logger
	} else {
		h.log = slog.With("hypo.hypothesis", o.name)
	}
	return h
}

// Expect exactly [n] values matching [m].
func (h *Hypothesis[T]) Exactly(m match.Matcher[T], n int) *Hypothesis[T] {
	return h.With(experiment.Exactly(m, n))
}

// Expect at least [n] values matching [m]. Validation can finish early once they arrive.
func (h *Hypothesis[T]) AtLeast(m match.Matcher[T], n int) *Hypothesis[T] {
	return h.With(experiment.AtLeast(m, n))
}

// Expect no more than [n] values matching [m].
func (h *Hypothesis[T]) AtMost(m match.Matcher[T], n int) *Hypothesis[T] {
	return h.With(experiment.AtMost(m, n))
}

// Expect every value to match [m]. This does not hold up validation, so pair it with a
// counting experiment to say when enough evidence has been seen.
func (h *Hypothesis[T]) All(m match.Matcher[T]) *Hypothesis[T] {
	return h.With(experiment.All(m))
}

// Expect no value to match [m]. Like [Hypothesis.All] it does not hold up validation.
func (h *Hypothesis[T]) None(m match.Matcher[T]) *Hypothesis[T] {
	return h.With(experiment.None(m))
}

// Expect at least one value matching [m].
func (h *Hypothesis[T]) Any(m match.Matcher[T]) *Hypothesis[T] {
	return h.With(experiment.AnyOf(m))
}

// Expect the first value observed to match [m].
func (h *Hypothesis[T]) First(m match.Matcher[T]) *Hypothesis[T] {
	return h.With(experiment.FirstOf(m))
}

// Attach a custom [experiment.Experiment]. Panics with [failure.InvalidState] if the
// hypothesis is already being validated.
func (h *Hypothesis[T]) With(e experiment.Experiment[T]) *Hypothesis[T] {
	h.mx.Lock()
	defer h.mx.Unlock()

	if h.validating {
		panic(failure.Misuse("experiment %v attached to %s during validation", e, h.name))
	}
	h.set.Add(e)
	return h
}

// Feed an observed value to every experiment. Failing experiments are only reported by
// [Hypothesis.Validate]; the only error returned here is [failure.InvalidState] when the
// hypothesis has already been validated. Safe for concurrent use.
func (h *Hypothesis[T]) Test(v T) error {
	h.mx.Lock()
	defer h.mx.Unlock()

	if h.finalized {
		err := failure.Misuse("value %v tested after %s was validated", v, h.name)
		h.log.Error("rejected value", "error", err)
		return err
	}

	if err := h.set.Push(v); err != nil {
		return err
	}
	h.log.Debug("value tested", "value", v, "count", h.set.Pushed())

	if h.set.SatisfiedEarly() {
		h.gate.Open()
	}
	return nil
}

// Same as [Hypothesis.ValidateContext] with [context.Background].
func (h *Hypothesis[T]) Validate(timeout time.Duration) error {
	return h.ValidateContext(context.Background(), timeout)
}

// Waits until every experiment that gates completion is done, [timeout] elapses or [ctx]
// ends, then evaluates every experiment with the evidence collected so far.
//
// Returns nil if every experiment holds, otherwise a *[failure.Aggregate] describing each
// failed experiment. When [ctx] ends first the result also wraps ctx.Err(). A second
// call returns [failure.InvalidState]. A timeout <= 0 uses [DefaultValidateTimeout].
func (h *Hypothesis[T]) ValidateContext(ctx context.Context, timeout time.Duration) error {
	h.mx.Lock()
	if h.validating {
		h.mx.Unlock()
		return failure.Misuse("%s validated twice", h.name)
	}
	h.validating = true
	h.mx.Unlock()

	if timeout <= 0 {
		timeout = DefaultValidateTimeout
	}

	if h.set.Len() == 0 {
		h.log.Info("no experiments, nothing to wait for")
		h.gate.Open()
	} else if h.set.SatisfiedEarly() {
		h.gate.Open()
	}

	h.log.Info("waiting for experiments", "timeout", timeout, "experiments", h.set.Len())
	state, waitErr := h.gate.Wait(ctx, timeout)
	if waitErr != nil && state != gate.Cancelled {
		return waitErr
	}
	h.log.Info("stopped waiting", "state", state, "values", h.set.Pushed())

	h.mx.Lock()
	h.finalized = true
	err := h.set.FinalizeAll()
	h.mx.Unlock()

	if gErr := h.gate.Finalize(); gErr != nil {
		return errors.Join(gErr, err)
	}

	if agg, ok := failure.AsAggregate[T](err); ok {
		agg.Hypothesis = h.name
		h.log.Info("hypothesis invalid", "failed", len(agg.Failures), "evaluated", agg.Evaluated)
	} else if err == nil {
		h.log.Info("hypothesis valid")
	}

	if state == gate.Cancelled {
		return errors.Join(waitErr, err)
	}
	return err
}

func (h *Hypothesis[T]) Name() string {
	return h.name
}

func (h *Hypothesis[T]) String() string {
	return fmt.Sprintf("Hypothesis[%s]{experiments: %d, values: %d, gate: %s}",
		h.name, h.set.Len(), h.set.Pushed(), h.gate.State())
}
