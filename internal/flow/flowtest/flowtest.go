// Package flowtest drives flows scheduled on a clockwork fake clock.
//
// Fake clock callbacks run on their own goroutines, so a transition is only
// observable some time after Advance returns. These helpers hide that wait.
package flowtest

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// NewClock returns a fake clock pinned at start.
func NewClock(start time.Time) *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(start)
}

// Step waits until exactly n timers are pending, then advances by d.
func Step(t testing.TB, clock *clockwork.FakeClock, n int, d time.Duration) {
	t.Helper()
	Pending(t, clock, n)
	clock.Advance(d)
}

// Pending waits until exactly n timers are scheduled.
func Pending(t testing.TB, clock *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, n), "waiting for %d pending timers", n)
}

// Idle fails unless the clock has no pending timers.
func Idle(t testing.TB, clock *clockwork.FakeClock) {
	t.Helper()
	Pending(t, clock, 0)
}

// AdvanceUntil keeps advancing by step until done reports true.
func AdvanceUntil(t testing.TB, clock *clockwork.FakeClock, step time.Duration, done func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		if done() {
			return true
		}
		clock.Advance(step)
		return done()
	}, waitFor, time.Millisecond)
}

// Eventually waits for cond after an Advance.
func Eventually(t testing.TB, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, waitFor, time.Millisecond, msg)
}
