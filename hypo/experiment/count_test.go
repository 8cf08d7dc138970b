package experiment_test

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/uberbrodt/hypo-go/hypo/experiment"
	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

func pushAll[T any](t *testing.T, e experiment.Experiment[T], values ...T) {
	t.Helper()
	for _, v := range values {
		assert.NilError(t, e.Push(v))
	}
}

func repeat(v string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, v)
	}
	return out
}

func asFailure(t *testing.T, err error) *failure.Failure[string] {
	t.Helper()
	f, ok := err.(*failure.Failure[string])
	assert.Assert(t, ok, "expected *failure.Failure[string], got %T: %v", err, err)
	return f
}

func TestExactly_Counts(t *testing.T) {
	for n := 0; n < 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ok := experiment.Exactly(match.Eq("a"), n)
			pushAll(t, ok, repeat("a", n)...)
			assert.NilError(t, ok.Finalize())

			more := experiment.Exactly(match.Eq("a"), n)
			pushAll(t, more, repeat("a", n+1)...)
			assert.Assert(t, failure.IsCountMismatch(more.Finalize()))

			if n > 0 {
				less := experiment.Exactly(match.Eq("a"), n)
				pushAll(t, less, repeat("a", n-1)...)
				assert.Assert(t, failure.IsCountMismatch(less.Finalize()))
			}
		})
	}
}

func TestExactly_NeverDoneEarly(t *testing.T) {
	e := experiment.Exactly(match.Eq("a"), 1)
	pushAll(t, e, "a")

	assert.Assert(t, !e.Done())
}

func TestExactly_FailureCarriesBuckets(t *testing.T) {
	e := experiment.Exactly(match.Eq("a"), 1)
	pushAll(t, e, "a", "b", "a", "c")

	f := asFailure(t, e.Finalize())
	assert.Check(t, cmp.Contains(f.Reason, "exactly 1"))
	assert.Check(t, cmp.DeepEqual(f.Matched, []string{"a", "a"}))
	assert.Check(t, cmp.DeepEqual(f.Unmatched, []string{"b", "c"}))
	assert.Check(t, cmp.Equal(f.Experiment, "Exactly(1, is equal to a)"))
}

func TestAtLeast_Counts(t *testing.T) {
	for n := 1; n < 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ok := experiment.AtLeast(match.Eq("a"), n)
			pushAll(t, ok, repeat("a", n+2)...)
			assert.NilError(t, ok.Finalize())

			less := experiment.AtLeast(match.Eq("a"), n)
			pushAll(t, less, repeat("a", n-1)...)
			pushAll(t, less, "b")

			f := asFailure(t, less.Finalize())
			assert.Check(t, failure.IsCountMismatch(f))
			assert.Check(t, cmp.Contains(f.Reason, fmt.Sprintf("at least %d", n)))
			assert.Check(t, cmp.DeepEqual(f.Matched, repeat("a", n-1)))
			assert.Check(t, cmp.DeepEqual(f.Unmatched, []string{"b"}))
		})
	}
}

func TestAtLeast_DoneOnceBoundReached(t *testing.T) {
	e := experiment.AtLeast(match.Eq("a"), 2)

	pushAll(t, e, "a")
	assert.Assert(t, !e.Done())
	pushAll(t, e, "a")
	assert.Assert(t, e.Done())
}

func TestAtLeast_ZeroIsDoneImmediately(t *testing.T) {
	e := experiment.AtLeast(match.Eq("a"), 0)

	assert.Assert(t, e.Done())
	assert.NilError(t, e.Finalize())
}

func TestAtMost_Counts(t *testing.T) {
	e := experiment.AtMost(match.Eq("a"), 2)
	pushAll(t, e, "a", "b", "a")
	assert.Assert(t, !e.Done())
	assert.NilError(t, e.Finalize())

	none := experiment.AtMost(match.Eq("a"), 2)
	assert.NilError(t, none.Finalize())

	over := experiment.AtMost(match.Eq("a"), 2)
	pushAll(t, over, "a", "a", "a")
	f := asFailure(t, over.Finalize())
	assert.Check(t, cmp.Contains(f.Reason, "at most 2"))
	assert.Check(t, cmp.Len(f.Matched, 3))
}

func TestCount_NegativePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		assert.Assert(t, ok)
		assert.Assert(t, failure.IsInvalidState(err))
	}()
	experiment.Exactly(match.Eq("a"), -1)
}

func TestCount_MisuseAfterFinalize(t *testing.T) {
	e := experiment.AtLeast(match.Eq("a"), 1)
	assert.Assert(t, failure.IsCountMismatch(e.Finalize()))

	assert.Assert(t, failure.IsInvalidState(e.Push("a")))
	assert.Assert(t, failure.IsInvalidState(e.Finalize()))
}

func TestCount_PanickingMatcherCountsAsUnmatched(t *testing.T) {
	boom := match.Func("explodes on b", func(x string) bool {
		if x == "b" {
			panic("kaboom")
		}
		return true
	})
	e := experiment.Exactly(boom, 2)
	pushAll(t, e, "a", "b")

	f := asFailure(t, e.Finalize())
	assert.Check(t, cmp.DeepEqual(f.Unmatched, []string{"b"}))
	assert.Check(t, cmp.Contains(f.Reason, "matcher panicked"))
	assert.Check(t, cmp.Contains(f.Reason, "kaboom"))
}
