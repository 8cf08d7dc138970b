// Experiments are the matching strategies that make up a hypothesis. Each one
// classifies every value it is pushed into a matched or unmatched bucket and, when
// finalized, decides whether the evidence it collected satisfies it.
//
// Strategies never fail while values are being pushed: every failure is returned by
// [Experiment.Finalize] so one validation reports the complete picture.
package experiment

import (
	"fmt"
	"sync"

	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

type Experiment[T any] interface {
	// Classifies [v]. Returns [failure.InvalidState] once the experiment is finalized.
	Push(v T) error
	// Reports whether more evidence can no longer change the outcome. A done
	// experiment is not pushed any more values.
	Done() bool
	// Evaluates the collected evidence. Returns nil, a *[failure.Failure] or, if called
	// twice, [failure.InvalidState].
	Finalize() error
	// Describes the experiment in reports and logs
	String() string
}

// Observer is implemented by experiments that watch every value without holding up
// the completion of a hypothesis, like [All] and [None].
type Observer interface {
	Observer() bool
}

// Returns true if [e] is an [Observer] that does not gate completion.
func IsObserver[T any](e Experiment[T]) bool {
	o, ok := e.(Observer)
	return ok && o.Observer()
}

// evidence is the bucket bookkeeping shared by every strategy.
type evidence[T any] struct {
	matcher   match.Matcher[T]
	matched   []T
	unmatched []T
	panics    []string
	finalized bool
	mx        sync.Mutex
}

// must be called with the lock held
func (e *evidence[T]) classify(v T) error {
	if e.finalized {
		return failure.Misuse("value %s pushed after the experiment was finalized", match.FormatGot(e.matcher, v))
	}

	if e.matches(v) {
		e.matched = append(e.matched, v)
		return nil
	}
	e.unmatched = append(e.unmatched, v)
	return nil
}

// a panicking matcher counts as not matching. The panic is kept for the report.
func (e *evidence[T]) matches(v T) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.panics = append(e.panics, fmt.Sprintf("matcher panicked on %s: %+v", match.FormatGot(e.matcher, v), r))
			ok = false
		}
	}()
	return e.matcher.Matches(v)
}

// must be called with the lock held
func (e *evidence[T]) finalize() error {
	if e.finalized {
		return failure.Misuse("experiment finalized twice")
	}
	e.finalized = true
	return nil
}

// must be called with the lock held
func (e *evidence[T]) fail(kind *failure.Kind, desc, reason string) *failure.Failure[T] {
	for _, p := range e.panics {
		reason = fmt.Sprintf("%s; %s", reason, p)
	}
	return failure.New(kind, desc, reason, e.matched, e.unmatched)
}

func mustCount(n int) {
	if n < 0 {
		panic(failure.Misuse("expected count must not be negative, got %d", n))
	}
}
