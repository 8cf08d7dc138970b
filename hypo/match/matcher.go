// Matchers classify the values fed to an experiment. A Matcher is a predicate
// with a description; the description is what shows up in failure reports.
//
// The shape follows the gomock Matcher interface, and [Mock] adapts any gomock
// matcher (eg: [gomock.Eq], [cmpmock.DiffEq]) for use with an experiment.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/budougumi0617/cmpmock"
	gocmp "github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
	"gotest.tools/v3/assert/cmp"
)

// A Matcher is a representation of a class of values.
type Matcher[T any] interface {
	// Matches returns whether x is a match.
	Matches(x T) bool

	// String describes what the matcher matches.
	String() string
}

// GotFormatter is used to better print failure messages. If a matcher
// implements GotFormatter, it will use the result from Got when printing
// a value it was given.
type GotFormatter[T any] interface {
	// Got is invoked with the received value. The result is used when
	// printing the failure message.
	Got(got T) string
}

// Formats [v] the way [m] wants it printed.
func FormatGot[T any](m Matcher[T], v T) string {
	if gs, ok := m.(GotFormatter[T]); ok {
		return gs.Got(v)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}

type funcMatcher[T any] struct {
	desc string
	f    func(T) bool
}

func (m funcMatcher[T]) Matches(x T) bool {
	return m.f(x)
}

func (m funcMatcher[T]) String() string {
	return m.desc
}

// A matcher described by [desc] that matches when [f] returns true.
func Func[T any](desc string, f func(T) bool) Matcher[T] {
	return funcMatcher[T]{desc: desc, f: f}
}

// An anonymous predicate. Prefer [Func] so failure reports are readable.
func Pred[T any](f func(T) bool) Matcher[T] {
	return Func("satisfies predicate", f)
}

// Matches everything.
func Anything[T any]() Matcher[T] {
	return Func("is anything", func(T) bool { return true })
}

// Matches values equal to [want].
func Eq[T comparable](want T) Matcher[T] {
	return Func(fmt.Sprintf("is equal to %v", want), func(x T) bool { return x == want })
}

// Inverts [m].
func Not[T any](m Matcher[T]) Matcher[T] {
	return Func(fmt.Sprintf("not(%s)", m), func(x T) bool { return !m.Matches(x) })
}

// Matches if any of [ms] matches. Evaluates in order and stops at the first match.
func AnyOf[T any](ms ...Matcher[T]) Matcher[T] {
	return Func(join("any of", ms), func(x T) bool {
		for _, m := range ms {
			if m.Matches(x) {
				return true
			}
		}
		return false
	})
}

// Matches if every one of [ms] matches.
func AllOf[T any](ms ...Matcher[T]) Matcher[T] {
	return Func(join("all of", ms), func(x T) bool {
		for _, m := range ms {
			if !m.Matches(x) {
				return false
			}
		}
		return true
	})
}

func join[T any](prefix string, ms []Matcher[T]) string {
	descs := make([]string, 0, len(ms))
	for _, m := range ms {
		descs = append(descs, m.String())
	}
	return fmt.Sprintf("%s(%s)", prefix, strings.Join(descs, "; "))
}

// Compares values to [want] using [go-cmp/cmp]
func DeepEqual[T any](want T, opts ...gocmp.Option) Matcher[T] {
	return Func(fmt.Sprintf("deeply equals %+v", want), func(x T) bool {
		return gocmp.Equal(x, want, opts...)
	})
}

type mockMatcher[T any] struct {
	m gomock.Matcher
}

func (mm mockMatcher[T]) Matches(x T) bool {
	return mm.m.Matches(x)
}

func (mm mockMatcher[T]) String() string {
	return mm.m.String()
}

func (mm mockMatcher[T]) Got(x T) string {
	if gf, ok := mm.m.(gomock.GotFormatter); ok {
		return gf.Got(x)
	}
	return fmt.Sprintf("%v (%T)", x, x)
}

// Adapts a gomock matcher. Methods like [gomock.Eq], [gomock.Not] and
// [gomock.InAnyOrder] are all valid.
func Mock[T any](m gomock.Matcher) Matcher[T] {
	return mockMatcher[T]{m: m}
}

// Like [DeepEqual], but built on [cmpmock.DiffEq] so the matcher's description
// carries a diff when used in gomock expectations.
func Diff[T any](want T, opts ...gocmp.Option) Matcher[T] {
	return Mock[T](cmpmock.DiffEq(want, opts...))
}

type comparisonMatcher[T any] struct {
	desc string
	c    func(T) cmp.Comparison
}

func (m comparisonMatcher[T]) Matches(x T) bool {
	return m.c(x)().Success()
}

func (m comparisonMatcher[T]) String() string {
	return m.desc
}

// Adapts a [gotest.tools/v3/assert/cmp] comparison. [c] builds the comparison for
// each value; the value matches if the comparison succeeds.
func Comparison[T any](desc string, c func(x T) cmp.Comparison) Matcher[T] {
	return comparisonMatcher[T]{desc: desc, c: c}
}

// Matches collections (or strings) that contain [item]. See [cmp.Contains]
func Contains[T any](item any) Matcher[T] {
	return Comparison(fmt.Sprintf("contains %v", item), func(x T) cmp.Comparison {
		return cmp.Contains(x, item)
	})
}

// Matches strings against [re], which is a *regexp.Regexp or a pattern string.
func Regexp(re cmp.RegexOrPattern) Matcher[string] {
	desc := fmt.Sprintf("matches %v", re)
	if r, ok := re.(*regexp.Regexp); ok {
		desc = fmt.Sprintf("matches %s", r.String())
	}
	return Comparison(desc, func(x string) cmp.Comparison {
		return cmp.Regexp(re, x)
	})
}
