package experiment

import (
	"errors"
	"fmt"
	"sync"

	"github.com/uberbrodt/fungo/fun"

	"github.com/uberbrodt/hypo-go/hypo/failure"
)

// Set is an ordered collection of experiments sharing one stream of values. Every value
// is delivered to each experiment that is not yet done, in declaration order, so each
// experiment classifies the stream as if it were the only one receiving it.
type Set[T any] struct {
	experiments []Experiment[T]
	finalized   bool
	pushed      int
	mx          sync.Mutex
}

func NewSet[T any]() *Set[T] {
	return &Set[T]{experiments: make([]Experiment[T], 0)}
}

// Appends [e]. Panics with [failure.InvalidState] if the set is already finalized.
func (s *Set[T]) Add(e Experiment[T]) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.finalized {
		panic(failure.Misuse("experiment %v added after the set was finalized", e))
	}
	s.experiments = append(s.experiments, e)
}

// Delivers [v] to every live experiment, even when one of them rejects it. The whole fan
// out happens under the set's lock, so concurrent callers never interleave within one
// value. Rejections are joined into the returned error.
func (s *Set[T]) Push(v T) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.finalized {
		return failure.Misuse("value pushed after the experiments were finalized")
	}
	s.pushed++

	live := fun.Filter(s.experiments, func(e Experiment[T]) bool {
		return !e.Done()
	})
	var errs []error
	for _, e := range live {
		if err := e.Push(v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reports whether the outcome is already settled: there is at least one experiment that
// gates completion and all of those are done. [Observer]s are ignored.
func (s *Set[T]) SatisfiedEarly() bool {
	s.mx.Lock()
	defer s.mx.Unlock()

	gating := fun.Filter(s.experiments, func(e Experiment[T]) bool {
		return !IsObserver(e)
	})
	if len(gating) == 0 {
		return false
	}

	return fun.Reduce(gating, true, func(e Experiment[T], acc bool) bool {
		if !acc {
			return acc
		}
		return e.Done()
	})
}

// Finalizes every experiment and collects every failure, rather than stopping at the
// first. Returns a *[failure.Aggregate] when at least one experiment failed, and
// [failure.InvalidState] when called twice. Errors that are not a [failure.Failure] come
// from broken [Experiment] implementations; they are joined with the aggregate.
func (s *Set[T]) FinalizeAll() error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.finalized {
		return failure.Misuse("experiments finalized twice")
	}
	s.finalized = true

	agg := &failure.Aggregate[T]{Evaluated: len(s.experiments)}
	var errs []error
	for _, e := range s.experiments {
		err := e.Finalize()
		if err == nil {
			continue
		}

		var f *failure.Failure[T]
		if !errors.As(err, &f) {
			errs = append(errs, fmt.Errorf("experiment %v: %w", e, err))
			continue
		}
		agg.Failures = append(agg.Failures, f)
	}

	if len(agg.Failures) == 0 {
		return errors.Join(errs...)
	}
	if len(errs) == 0 {
		return agg
	}
	return errors.Join(append([]error{agg}, errs...)...)
}

// number of experiments in the set
func (s *Set[T]) Len() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.experiments)
}

// number of values pushed so far
func (s *Set[T]) Pushed() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.pushed
}
