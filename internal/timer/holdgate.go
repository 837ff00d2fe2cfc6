package timer

import (
	"sync"
	"time"

	"github.com/verte-zerg/cubetui/internal/clock"
)

// HoldGate turns raw press/release signals into commit or abort decisions
// for the machine. Duplicate downs, stray ups and overlapping input sources
// (keyboard plus pointer for one physical gesture) are absorbed as no-ops.
type HoldGate struct {
	mu      sync.Mutex
	machine *Machine
	clk     clock.Clock

	holding       bool
	holdStartedAt time.Time
}

// NewHoldGate wires a gate to a machine. clk should be the same clock the
// machine uses; nil falls back to the system clock.
func NewHoldGate(m *Machine, clk clock.Clock) *HoldGate {
	if clk == nil {
		clk = clock.System()
	}
	return &HoldGate{machine: m, clk: clk}
}

// Holding reports whether a press is currently held.
func (g *HoldGate) Holding() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.holding
}

// PressDown begins a hold and forwards the press-start trigger. A down
// while already holding is dropped.
func (g *HoldGate) PressDown() {
	g.mu.Lock()
	if g.holding {
		g.mu.Unlock()
		return
	}
	g.holding = true
	g.holdStartedAt = g.clk.Now()
	g.mu.Unlock()

	g.machine.PressStart()
}

// PressUp ends a hold. A hold at least as long as the configured threshold
// commits the start when the machine is arming; anything shorter aborts.
// An up without a matching down is dropped.
func (g *HoldGate) PressUp() {
	g.mu.Lock()
	if !g.holding {
		g.mu.Unlock()
		return
	}
	g.holding = false
	held := g.clk.Now().Sub(g.holdStartedAt)
	g.mu.Unlock()

	if held >= g.machine.Config().HoldDuration && g.machine.Arming() {
		g.machine.CommitStart()
		return
	}
	g.machine.AbortStart()
}

// AbortHold ends a hold as a too-short press regardless of its measured
// duration. Boundaries that cannot observe key releases (terminals infer
// them from the autorepeat stream) use this when they detect a tap late.
func (g *HoldGate) AbortHold() {
	g.mu.Lock()
	if !g.holding {
		g.mu.Unlock()
		return
	}
	g.holding = false
	g.mu.Unlock()

	g.machine.AbortStart()
}

// Cancel clears any hold and cancels the machine unconditionally.
func (g *HoldGate) Cancel() {
	g.mu.Lock()
	g.holding = false
	g.mu.Unlock()

	g.machine.Cancel()
}
