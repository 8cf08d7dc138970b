package experiment

import (
	"fmt"

	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

// Any is satisfied by the first matching value and is done as soon as it sees one.
type Any[T any] struct {
	evidence[T]
}

// Satisfied if at least one value matches [m].
func AnyOf[T any](m match.Matcher[T]) *Any[T] {
	return &Any[T]{evidence: evidence[T]{matcher: m}}
}

func (a *Any[T]) Push(v T) error {
	a.mx.Lock()
	defer a.mx.Unlock()

	return a.classify(v)
}

func (a *Any[T]) Done() bool {
	a.mx.Lock()
	defer a.mx.Unlock()
	return len(a.matched) > 0
}

func (a *Any[T]) Finalize() error {
	a.mx.Lock()
	defer a.mx.Unlock()

	if err := a.finalize(); err != nil {
		return err
	}
	if len(a.matched) == 0 {
		return a.fail(failure.CountMismatch, a.describe(),
			fmt.Sprintf("expected at least one match but found none in %d values", len(a.unmatched)))
	}
	return nil
}

func (a *Any[T]) describe() string {
	return fmt.Sprintf("Any(%s)", a.matcher)
}

func (a *Any[T]) String() string {
	a.mx.Lock()
	defer a.mx.Unlock()
	return fmt.Sprintf("%s{matched: %d, unmatched: %d}", a.describe(), len(a.matched), len(a.unmatched))
}

// First only looks at the first value it is pushed, which must match.
type First[T any] struct {
	evidence[T]
}

// Satisfied if the first value observed matches [m]. Done after the first value.
func FirstOf[T any](m match.Matcher[T]) *First[T] {
	return &First[T]{evidence: evidence[T]{matcher: m}}
}

func (f *First[T]) Push(v T) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if !f.finalized && len(f.matched)+len(f.unmatched) > 0 {
		return nil
	}
	return f.classify(v)
}

func (f *First[T]) Done() bool {
	f.mx.Lock()
	defer f.mx.Unlock()
	return len(f.matched)+len(f.unmatched) > 0
}

func (f *First[T]) Finalize() error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if err := f.finalize(); err != nil {
		return err
	}

	switch {
	case len(f.matched)+len(f.unmatched) == 0:
		return f.fail(failure.CountMismatch, f.describe(), "expected a first value but none was observed")
	case len(f.unmatched) > 0:
		return f.fail(failure.PredicateViolated, f.describe(),
			fmt.Sprintf("expected the first value to match but got %s", match.FormatGot(f.matcher, f.unmatched[0])))
	}
	return nil
}

func (f *First[T]) describe() string {
	return fmt.Sprintf("First(%s)", f.matcher)
}

func (f *First[T]) String() string {
	f.mx.Lock()
	defer f.mx.Unlock()
	return fmt.Sprintf("%s{matched: %d, unmatched: %d}", f.describe(), len(f.matched), len(f.unmatched))
}
