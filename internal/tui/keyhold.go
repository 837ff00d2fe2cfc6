package tui

import (
	"time"

	"github.com/verte-zerg/cubetui/internal/clock"
	"github.com/verte-zerg/cubetui/internal/timer"
)

// Terminals report key-down and autorepeat but never key-up, so the hold
// gate's release signal has to be inferred from the repeat stream: a key
// still repeating is still held, a repeat gap means it was released.
const (
	// No repeat for this long means the key is up. Must exceed the
	// keyboard's initial autorepeat delay (commonly 500-660ms).
	releaseTimeout = 700 * time.Millisecond
	// Once the repeat cadence is established, a press after this much
	// silence is a new physical press, not the next autorepeat. Before
	// the first repeat only releaseTimeout applies: the gap between
	// key-down and the first repeat is the full initial delay.
	repeatGap = 350 * time.Millisecond
	// Cadence of the release polling while a key is considered held.
	holdPollInterval = 50 * time.Millisecond
)

// keyHold tracks one trigger key. It owns no timers itself; the Bubble Tea
// model schedules polls for the sequence numbers Press hands out.
type keyHold struct {
	gate    *timer.HoldGate
	machine *timer.Machine
	clk     clock.Clock

	active     bool
	committed  bool
	repeating  bool
	seq        int
	pressedAt  time.Time
	lastSeenAt time.Time
}

func newKeyHold(gate *timer.HoldGate, machine *timer.Machine, clk clock.Clock) *keyHold {
	if clk == nil {
		clk = clock.System()
	}
	return &keyHold{gate: gate, machine: machine, clk: clk}
}

// Press handles a key-down event, first press or autorepeat. It returns a
// poll sequence number when a new release poll must be scheduled, or -1.
func (k *keyHold) Press() int {
	now := k.clk.Now()
	if k.active && now.Sub(k.lastSeenAt) > k.gapThreshold() {
		// The previous press was released between repeats; settle it
		// before treating this event as a fresh press.
		k.settleRelease()
	}
	if !k.active {
		k.active = true
		k.committed = false
		k.repeating = false
		k.seq++
		k.pressedAt = now
		k.lastSeenAt = now
		k.gate.PressDown()
		return k.seq
	}

	// Autorepeat of the held key.
	k.repeating = true
	k.lastSeenAt = now
	if !k.committed && k.machine.Arming() && now.Sub(k.pressedAt) >= k.machine.Config().HoldDuration {
		// Held long enough: commit now rather than waiting for a
		// release we cannot observe.
		k.committed = true
		k.gate.PressUp()
	}
	return -1
}

// Poll checks whether the key has been released. It reports whether the
// caller should keep polling for this sequence.
func (k *keyHold) Poll(seq int) bool {
	if !k.active || seq != k.seq {
		return false
	}
	if k.clk.Now().Sub(k.lastSeenAt) < k.gapThreshold() {
		return true
	}
	k.settleRelease()
	return false
}

// Cancel clears the tracked hold and cancels the attempt.
func (k *keyHold) Cancel() {
	k.active = false
	k.committed = false
	k.repeating = false
	k.gate.Cancel()
}

// gapThreshold returns the silence that separates two presses. The
// keyboard's initial delay only precedes the first repeat; after that the
// repeat interval is much shorter.
func (k *keyHold) gapThreshold() time.Duration {
	if k.repeating {
		return repeatGap
	}
	return releaseTimeout
}

func (k *keyHold) settleRelease() {
	wasCommitted := k.committed
	k.active = false
	k.committed = false
	k.repeating = false
	if !wasCommitted {
		// The press ended before the hold threshold was proven: a tap.
		k.gate.AbortHold()
	}
}
