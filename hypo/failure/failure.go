// Every experiment that does not hold when a hypothesis is validated produces a
// [Failure]. The failures of one validation are returned together as an [Aggregate].
//
// The kind of a failure is one of the sentinel [Kind]s in this package. Test for it with
// [errors.Is] or the `Is*(error) bool` helpers; both work through an [Aggregate].
package failure

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	countMismatch     = "count_mismatch"
	predicateViolated = "predicate_violated"
	invalidState      = "invalid_state"
)

// Opaque failure kind. Only the sentinel values declared in this package exist.
type Kind struct {
	short string
}

func (k *Kind) Error() string {
	return k.short
}

func (k *Kind) String() string {
	return k.short
}

// Sentinel kinds
var (
	// A counting experiment's final tally did not satisfy its bound.
	CountMismatch = &Kind{short: countMismatch}
	// A universal experiment observed a value that violated its matcher.
	PredicateViolated = &Kind{short: predicateViolated}
	// The API was misused: a value was tested after validation, or something was
	// finalized twice. This is a programming error, not a failed hypothesis.
	InvalidState = &Kind{short: invalidState}
)

// Failure describes one experiment that did not hold, together with the evidence
// it collected. A Failure is never mutated after it is created.
type Failure[T any] struct {
	kind *Kind
	// Description of the failed experiment, eg: `AtLeast(2, is equal to a)`
	Experiment string
	// Human readable reason
	Reason string
	// values that satisfied the experiment's matcher, in observation order
	Matched []T
	// values that did not satisfy the matcher, in observation order
	Unmatched []T
}

// Creates a [Failure]. The evidence slices are copied.
func New[T any](kind *Kind, experiment, reason string, matched, unmatched []T) *Failure[T] {
	return &Failure[T]{
		kind:       kind,
		Experiment: experiment,
		Reason:     reason,
		Matched:    clone(matched),
		Unmatched:  clone(unmatched),
	}
}

func clone[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

func (f *Failure[T]) Kind() *Kind {
	return f.kind
}

func (f *Failure[T]) Error() string {
	return fmt.Sprintf("%s: %s", f.Experiment, f.Reason)
}

func (f *Failure[T]) Unwrap() error {
	return f.kind
}

// Multi-line rendering of the failure including its evidence.
func (f *Failure[T]) Report() string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s [%s]\n", f.Experiment, f.kind)
	fmt.Fprintf(buf, "  reason: %s\n", f.Reason)
	fmt.Fprintf(buf, "  matched: %v\n", f.Matched)
	fmt.Fprintf(buf, "  unmatched: %v\n", f.Unmatched)
	return buf.String()
}

// Aggregate wraps every [Failure] produced by one validation. It is only created
// when at least one experiment failed.
type Aggregate[T any] struct {
	// name of the hypothesis, may be empty
	Hypothesis string
	// number of experiments that were evaluated
	Evaluated int
	Failures  []*Failure[T]
}

func (a *Aggregate[T]) Error() string {
	buf := new(bytes.Buffer)
	if a.Hypothesis != "" {
		fmt.Fprintf(buf, "hypothesis %s invalid: ", a.Hypothesis)
	} else {
		fmt.Fprint(buf, "hypothesis invalid: ")
	}
	fmt.Fprintf(buf, "%d of %d experiments failed:\n", len(a.Failures), a.Evaluated)
	for _, f := range a.Failures {
		fmt.Fprint(buf, f.Report())
	}
	return buf.String()
}

// Makes the constituent failures visible to [errors.Is] and [errors.As]
func (a *Aggregate[T]) Unwrap() []error {
	errs := make([]error, 0, len(a.Failures))
	for _, f := range a.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Returns the [Aggregate] in the chain of [err], if any.
func AsAggregate[T any](err error) (*Aggregate[T], bool) {
	var agg *Aggregate[T]
	ok := errors.As(err, &agg)
	return agg, ok
}

// Returns an [InvalidState] error with a detail message.
func Misuse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", InvalidState, fmt.Sprintf(format, args...))
}

// Test if [e] is, or wraps, a [CountMismatch]
func IsCountMismatch(e error) bool {
	return errors.Is(e, CountMismatch)
}

// Test if [e] is, or wraps, a [PredicateViolated]
func IsPredicateViolated(e error) bool {
	return errors.Is(e, PredicateViolated)
}

// Test if [e] is, or wraps, an [InvalidState]
func IsInvalidState(e error) bool {
	return errors.Is(e, InvalidState)
}
