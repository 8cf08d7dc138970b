package chronos

import (
	"sync"
	"time"
)

// A Clock is the time source used to measure validation timeouts. Use [Real] in
// normal code and a [Fake] when a test needs to control when a timeout fires.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer is the subset of [time.Timer] that a [Clock] hands out.
type Timer interface {
	C() <-chan time.Time
	// Stop prevents the timer from firing. Returns false if it already fired or was stopped.
	Stop() bool
}

type realClock struct{}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) C() <-chan time.Time {
	return rt.t.C
}

func (rt realTimer) Stop() bool {
	return rt.t.Stop()
}

// Returns a [Clock] backed by the [time] package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) NewTimer(d time.Duration) Timer {
	return realTimer{t: time.NewTimer(d)}
}

// Fake is a manually driven [Clock]. Time only moves when [Fake.Advance] is called,
// and timers fire during that call once their deadline has been reached.
type Fake struct {
	mx     sync.Mutex
	cond   *sync.Cond
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	c        chan time.Time
	stopped  bool
	fired    bool
}

// Creates a [Fake] clock that starts at [start].
func NewFake(start time.Time) *Fake {
	f := &Fake{now: start}
	f.cond = sync.NewCond(&f.mx)
	return f
}

func (f *Fake) Now() time.Time {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.now
}

func (f *Fake) NewTimer(d time.Duration) Timer {
	f.mx.Lock()
	defer f.mx.Unlock()

	ft := &fakeTimer{clock: f, deadline: f.now.Add(d), c: make(chan time.Time, 1)}
	if d <= 0 {
		ft.fired = true
		ft.c <- f.now
	} else {
		f.timers = append(f.timers, ft)
	}
	f.cond.Broadcast()

	return ft
}

// Moves the clock forward by [d], firing every pending timer whose deadline has passed.
func (f *Fake) Advance(d time.Duration) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.now = f.now.Add(d)
	pending := f.timers[:0]
	for _, ft := range f.timers {
		if ft.stopped {
			continue
		}
		if !ft.deadline.After(f.now) {
			ft.fired = true
			ft.c <- f.now
			continue
		}
		pending = append(pending, ft)
	}
	f.timers = pending
}

// Blocks until at least [n] timers are waiting to fire. Use this to avoid advancing the
// clock before the code under test has started its timer.
func (f *Fake) BlockUntilTimers(n int) {
	f.mx.Lock()
	defer f.mx.Unlock()

	for f.pending() < n {
		f.cond.Wait()
	}
}

func (f *Fake) pending() int {
	var cnt int
	for _, ft := range f.timers {
		if !ft.stopped && !ft.fired {
			cnt++
		}
	}
	return cnt
}

func (ft *fakeTimer) C() <-chan time.Time {
	return ft.c
}

func (ft *fakeTimer) Stop() bool {
	ft.clock.mx.Lock()
	defer ft.clock.mx.Unlock()

	if ft.stopped || ft.fired {
		return false
	}
	ft.stopped = true
	ft.clock.cond.Broadcast()
	return true
}
