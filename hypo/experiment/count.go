package experiment

import (
	"fmt"

	"github.com/uberbrodt/hypo-go/hypo/failure"
	"github.com/uberbrodt/hypo-go/hypo/match"
)

type countType string

const (
	exact   countType = "EXACTLY"
	atLeast countType = "AT_LEAST"
	atMost  countType = "AT_MOST"
)

// Count is the experiment behind [Exactly], [AtLeast] and [AtMost]: it counts how many
// pushed values satisfy its matcher and compares the tally with a bound when finalized.
type Count[T any] struct {
	evidence[T]
	cType countType
	times int
}

// Satisfied only if exactly [n] values match. Never done early, so a hypothesis using it
// waits for its whole timeout.
func Exactly[T any](m match.Matcher[T], n int) *Count[T] {
	mustCount(n)
	return &Count[T]{evidence: evidence[T]{matcher: m}, cType: exact, times: n}
}

// Satisfied if at least [n] values match. Done as soon as the n-th match arrives, after
// which a hypothesis stops pushing values to it.
func AtLeast[T any](m match.Matcher[T], n int) *Count[T] {
	mustCount(n)
	return &Count[T]{evidence: evidence[T]{matcher: m}, cType: atLeast, times: n}
}

// Satisfied if no more than [n] values match. Zero matches also pass.
// WARNING: never done early, so a hypothesis using it waits for its whole timeout.
func AtMost[T any](m match.Matcher[T], n int) *Count[T] {
	mustCount(n)
	return &Count[T]{evidence: evidence[T]{matcher: m}, cType: atMost, times: n}
}

func (c *Count[T]) Push(v T) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	return c.classify(v)
}

func (c *Count[T]) Done() bool {
	c.mx.Lock()
	defer c.mx.Unlock()

	return c.cType == atLeast && len(c.matched) >= c.times
}

func (c *Count[T]) Finalize() error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if err := c.finalize(); err != nil {
		return err
	}

	found := len(c.matched)
	switch c.cType {
	case exact:
		if found != c.times {
			return c.fail(failure.CountMismatch, c.describe(),
				fmt.Sprintf("expected exactly %d matches but found %d", c.times, found))
		}
	case atLeast:
		if found < c.times {
			return c.fail(failure.CountMismatch, c.describe(),
				fmt.Sprintf("expected at least %d matches but found %d", c.times, found))
		}
	case atMost:
		if found > c.times {
			return c.fail(failure.CountMismatch, c.describe(),
				fmt.Sprintf("expected at most %d matches but found %d", c.times, found))
		}
	}
	return nil
}

func (c *Count[T]) describe() string {
	switch c.cType {
	case exact:
		return fmt.Sprintf("Exactly(%d, %s)", c.times, c.matcher)
	case atLeast:
		return fmt.Sprintf("AtLeast(%d, %s)", c.times, c.matcher)
	default:
		return fmt.Sprintf("AtMost(%d, %s)", c.times, c.matcher)
	}
}

func (c *Count[T]) String() string {
	c.mx.Lock()
	defer c.mx.Unlock()

	return fmt.Sprintf("%s{matched: %d, unmatched: %d}", c.describe(), len(c.matched), len(c.unmatched))
}
