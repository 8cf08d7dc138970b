// Package gate holds the wait primitive behind [hypo.Hypothesis.Validate]. A Gate resolves
// when it is opened (every gating experiment is done), when its timeout elapses or when
// the caller's context ends, whichever happens first.
package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/uberbrodt/hypo-go/chronos"
	"github.com/uberbrodt/hypo-go/hypo/failure"
)

type State int

const (
	// created, nobody is waiting yet
	Idle State = iota
	Waiting
	// opened before the timeout
	Satisfied
	TimedOut
	// the waiting context ended before the gate was opened or timed out
	Cancelled
	Finalized
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Satisfied:
		return "satisfied"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Gate struct {
	clock  chronos.Clock
	state  State
	opened chan struct{}
	once   sync.Once
	mx     sync.RWMutex
}

func New(clock chronos.Clock) *Gate {
	if clock == nil {
		clock = chronos.Real()
	}
	return &Gate{clock: clock, opened: make(chan struct{})}
}

// Signals that the outcome is settled. Safe to call many times and before [Gate.Wait].
func (g *Gate) Open() {
	g.once.Do(func() {
		close(g.opened)
	})
}

// Blocks until the gate is opened, [timeout] elapses or [ctx] is done. Returns the
// resolved state; the error is ctx.Err() when cancelled, or [failure.InvalidState] if
// the gate was already waited on.
func (g *Gate) Wait(ctx context.Context, timeout time.Duration) (State, error) {
	if err := g.transition(Idle, Waiting); err != nil {
		return g.State(), err
	}

	// an already opened gate wins over an expired timeout
	select {
	case <-g.opened:
		return Satisfied, g.transition(Waiting, Satisfied)
	default:
	}

	timer := g.clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-g.opened:
		return Satisfied, g.transition(Waiting, Satisfied)
	case <-timer.C():
		return TimedOut, g.transition(Waiting, TimedOut)
	case <-ctx.Done():
		if err := g.transition(Waiting, Cancelled); err != nil {
			return Cancelled, err
		}
		return Cancelled, ctx.Err()
	}
}

// Marks the end of the gate's life. Only valid once the gate has resolved.
func (g *Gate) Finalize() error {
	g.mx.Lock()
	defer g.mx.Unlock()

	switch g.state {
	case Satisfied, TimedOut, Cancelled:
		g.state = Finalized
		return nil
	default:
		return failure.Misuse("gate cannot be finalized while %s", g.state)
	}
}

func (g *Gate) State() State {
	g.mx.RLock()
	defer g.mx.RUnlock()
	return g.state
}

func (g *Gate) transition(from, to State) error {
	g.mx.Lock()
	defer g.mx.Unlock()

	if g.state != from {
		return failure.Misuse("gate cannot move to %s while %s", to, g.state)
	}
	g.state = to
	return nil
}
