package experiment

import (
	"fmt"

	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

// Universal backs [All] and [None]. It is an [Observer]: it sees every value the
// hypothesis receives for its whole lifetime but never decides when the hypothesis is
// complete, so it composes with a counting experiment.
type Universal[T any] struct {
	evidence[T]
	// when true, every value must match; otherwise no value may match
	all bool
}

// Satisfied if every value observed matches [m]. Zero values also pass.
func All[T any](m match.Matcher[T]) *Universal[T] {
	return &Universal[T]{evidence: evidence[T]{matcher: m}, all: true}
}

// Satisfied if no value observed matches [m].
func None[T any](m match.Matcher[T]) *Universal[T] {
	return &Universal[T]{evidence: evidence[T]{matcher: m}}
}

func (u *Universal[T]) Push(v T) error {
	u.mx.Lock()
	defer u.mx.Unlock()

	return u.classify(v)
}

func (u *Universal[T]) Done() bool {
	return false
}

func (u *Universal[T]) Observer() bool {
	return true
}

func (u *Universal[T]) Finalize() error {
	u.mx.Lock()
	defer u.mx.Unlock()

	if err := u.finalize(); err != nil {
		return err
	}

	if u.all && len(u.unmatched) > 0 {
		return u.fail(failure.PredicateViolated, u.describe(),
			fmt.Sprintf("expected all values to match but %d did not", len(u.unmatched)))
	}
	if !u.all && len(u.matched) > 0 {
		return u.fail(failure.PredicateViolated, u.describe(),
			fmt.Sprintf("expected no values to match but %d did", len(u.matched)))
	}
	return nil
}

func (u *Universal[T]) describe() string {
	if u.all {
		return fmt.Sprintf("All(%s)", u.matcher)
	}
	return fmt.Sprintf("None(%s)", u.matcher)
}

func (u *Universal[T]) String() string {
	u.mx.Lock()
	defer u.mx.Unlock()

	return fmt.Sprintf("%s{matched: %d, unmatched: %d}", u.describe(), len(u.matched), len(u.unmatched))
}
