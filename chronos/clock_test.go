package chronos_test

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/uberbrodt/hypo-go/chronos"
)

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func fired(tm chronos.Timer) bool {
	select {
	case <-tm.C():
		return true
	default:
		return false
	}
}

func TestDur(t *testing.T) {
	assert.Equal(t, chronos.Dur("1m30s"), 90*time.Second)
	assert.Assert(t, func() (ok bool) {
		defer func() { ok = recover() != nil }()
		chronos.Dur("ninety seconds")
		return false
	}())
}

func TestFake_TimerFiresOnlyAfterDeadline(t *testing.T) {
	clock := chronos.NewFake(epoch)
	tm := clock.NewTimer(time.Second)

	clock.Advance(999 * time.Millisecond)
	assert.Assert(t, !fired(tm))

	clock.Advance(time.Millisecond)
	assert.Assert(t, fired(tm))
	assert.Equal(t, clock.Now(), epoch.Add(time.Second))
}

func TestFake_StoppedTimerNeverFires(t *testing.T) {
	clock := chronos.NewFake(epoch)
	tm := clock.NewTimer(time.Second)

	assert.Assert(t, tm.Stop())
	assert.Assert(t, !tm.Stop())

	clock.Advance(time.Minute)
	assert.Assert(t, !fired(tm))
}

func TestFake_ZeroDurationFiresImmediately(t *testing.T) {
	clock := chronos.NewFake(epoch)
	tm := clock.NewTimer(0)

	assert.Assert(t, fired(tm))
	assert.Assert(t, !tm.Stop())
}

func TestFake_BlockUntilTimers(t *testing.T) {
	clock := chronos.NewFake(epoch)
	started := make(chan chronos.Timer)

	go func() {
		started <- clock.NewTimer(time.Second)
	}()

	clock.BlockUntilTimers(1)
	clock.Advance(time.Second)

	tm := <-started
	assert.Assert(t, fired(tm))
}

func TestReal_TimerFires(t *testing.T) {
	tm := chronos.Real().NewTimer(time.Millisecond)

	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
