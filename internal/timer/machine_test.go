package timer

import (
	"testing"
	"time"

	"github.com/verte-zerg/cubetui/internal/clock"
	"github.com/verte-zerg/cubetui/internal/model"
)

func newTestMachine(t *testing.T, cfg model.TimerConfig, hooks Hooks) (*Machine, *HoldGate, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake()
	m, err := NewMachine(cfg, fake, fake, hooks)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m, NewHoldGate(m, fake), fake
}

func TestNewMachineRejectsBadConfig(t *testing.T) {
	cases := []model.TimerConfig{
		{HoldDuration: 0},
		{HoldDuration: -time.Second},
		{HoldDuration: 250 * time.Millisecond, Cooldown: -time.Second},
		{HoldDuration: 250 * time.Millisecond, UseInspection: true, InspectionTime: 10 * time.Second},
		{HoldDuration: 250 * time.Millisecond, UseInspection: true},
	}
	for i, cfg := range cases {
		if _, err := NewMachine(cfg, clock.NewFake(), clock.NewFake(), Hooks{}); err == nil {
			t.Fatalf("case %d: expected config error for %+v", i, cfg)
		}
	}
}

func TestShortHoldAborts(t *testing.T) {
	completes := 0
	m, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{
		OnComplete: func(int64) { completes++ },
	})

	g.PressDown()
	if got := m.State(); got != model.StateReady {
		t.Fatalf("state after press = %v, want ready", got)
	}
	fake.Advance(100 * time.Millisecond)
	g.PressUp()
	if got := m.State(); got != model.StateIdle {
		t.Fatalf("state after short hold = %v, want idle", got)
	}
	if completes != 0 {
		t.Fatalf("short hold fired %d completions", completes)
	}
}

func TestFullSolveMeasuresElapsed(t *testing.T) {
	var elapsed []int64
	m, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{
		OnComplete: func(ms int64) { elapsed = append(elapsed, ms) },
	})

	g.PressDown()
	fake.Advance(300 * time.Millisecond)
	g.PressUp()
	if got := m.State(); got != model.StateRunning {
		t.Fatalf("state after long hold = %v, want running", got)
	}

	fake.Advance(9500 * time.Millisecond)
	g.PressDown()
	if got := m.State(); got != model.StateStopped {
		t.Fatalf("state after stop tap = %v, want stopped", got)
	}
	g.PressUp()

	if len(elapsed) != 1 {
		t.Fatalf("got %d completions, want exactly 1", len(elapsed))
	}
	if elapsed[0] != 9500 {
		t.Fatalf("elapsed = %dms, want 9500", elapsed[0])
	}
	if m.Elapsed() != 9500 {
		t.Fatalf("Elapsed() after stop = %d, want 9500", m.Elapsed())
	}
	if fake.Active() != 0 {
		t.Fatalf("%d tasks still scheduled after stop", fake.Active())
	}
}

func TestRunningTickRecomputesFromStart(t *testing.T) {
	var last int64
	_, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{
		OnTick: func(ms int64) { last = ms },
	})

	g.PressDown()
	fake.Advance(model.DefaultHoldDuration)
	g.PressUp()
	fake.Advance(1234 * time.Millisecond)
	if last != 1234 {
		t.Fatalf("last tick elapsed = %d, want 1234", last)
	}
}

func TestCancelFromEveryStateReturnsIdle(t *testing.T) {
	completes := 0
	m, g, fake := newTestMachine(t, model.FullSolveConfig(true, 15*time.Second), Hooks{
		OnComplete: func(int64) { completes++ },
	})

	// From inspection.
	g.PressDown()
	g.PressUp()
	if m.State() != model.StateInspection {
		t.Fatalf("setup: state = %v, want inspection", m.State())
	}
	g.Cancel()
	if m.State() != model.StateIdle {
		t.Fatalf("cancel from inspection -> %v, want idle", m.State())
	}

	// From inspection-ready.
	g.PressDown()
	g.PressUp()
	g.PressDown()
	if m.State() != model.StateInspectionReady {
		t.Fatalf("setup: state = %v, want inspection_ready", m.State())
	}
	g.Cancel()
	if m.State() != model.StateIdle {
		t.Fatalf("cancel from inspection_ready -> %v, want idle", m.State())
	}

	// From running.
	g.PressDown()
	g.PressUp()
	g.PressDown()
	fake.Advance(time.Second)
	g.PressUp()
	if m.State() != model.StateRunning {
		t.Fatalf("setup: state = %v, want running", m.State())
	}
	fake.Advance(time.Second)
	g.Cancel()
	if m.State() != model.StateIdle {
		t.Fatalf("cancel from running -> %v, want idle", m.State())
	}

	if completes != 0 {
		t.Fatalf("cancel paths fired %d completions", completes)
	}
	if fake.Active() != 0 {
		t.Fatalf("%d tasks still scheduled after cancels", fake.Active())
	}
}

func TestCooldownDropsEarlyPress(t *testing.T) {
	m, g, fake := newTestMachine(t, model.FullSolveConfig(false, 0), Hooks{})

	g.PressDown()
	fake.Advance(300 * time.Millisecond)
	g.PressUp()
	fake.Advance(5 * time.Second)
	g.PressDown()
	g.PressUp()
	if m.State() != model.StateStopped {
		t.Fatalf("setup: state = %v, want stopped", m.State())
	}

	fake.Advance(200 * time.Millisecond)
	g.PressDown()
	if m.State() != model.StateStopped {
		t.Fatalf("press inside cooldown moved state to %v", m.State())
	}
	g.PressUp()

	fake.Advance(400 * time.Millisecond)
	g.PressDown()
	if m.State() != model.StateReady {
		t.Fatalf("press after cooldown -> %v, want ready", m.State())
	}
}

func TestInspectionCountdownAndExpiry(t *testing.T) {
	var ticks []int
	completes := 0
	m, g, fake := newTestMachine(t, model.FullSolveConfig(true, 8*time.Second), Hooks{
		OnInspectionTick: func(s int) { ticks = append(ticks, s) },
		OnComplete:       func(int64) { completes++ },
	})

	g.PressDown()
	g.PressUp()
	if m.State() != model.StateInspection {
		t.Fatalf("state = %v, want inspection", m.State())
	}
	if m.InspectionRemaining() != 8 {
		t.Fatalf("remaining = %d, want 8", m.InspectionRemaining())
	}

	fake.Advance(3 * time.Second)
	if m.InspectionRemaining() != 5 {
		t.Fatalf("remaining after 3s = %d, want 5", m.InspectionRemaining())
	}
	if len(ticks) != 3 || ticks[0] != 7 || ticks[2] != 5 {
		t.Fatalf("ticks after 3s = %v, want [7 6 5]", ticks)
	}

	fake.Advance(6 * time.Second)
	if m.State() != model.StateIdle {
		t.Fatalf("state after expiry = %v, want idle", m.State())
	}
	if completes != 0 {
		t.Fatalf("expiry fired %d completions", completes)
	}
	if fake.Active() != 0 {
		t.Fatalf("%d tasks still scheduled after expiry", fake.Active())
	}
}

func TestInspectionHoldStartsSolve(t *testing.T) {
	m, g, fake := newTestMachine(t, model.FullSolveConfig(true, 15*time.Second), Hooks{})

	g.PressDown()
	g.PressUp()
	g.PressDown()
	if m.State() != model.StateInspectionReady {
		t.Fatalf("state = %v, want inspection_ready", m.State())
	}

	// Too short: back to inspection, countdown still live.
	fake.Advance(100 * time.Millisecond)
	g.PressUp()
	if m.State() != model.StateInspection {
		t.Fatalf("state after short hold = %v, want inspection", m.State())
	}

	g.PressDown()
	fake.Advance(400 * time.Millisecond)
	g.PressUp()
	if m.State() != model.StateRunning {
		t.Fatalf("state after long hold = %v, want running", m.State())
	}
	// The countdown task must be gone once the solve starts.
	if fake.Active() != 1 {
		t.Fatalf("%d tasks scheduled while running, want 1 (refresh)", fake.Active())
	}
}

func TestStateChangeSequence(t *testing.T) {
	var states []model.TimerState
	_, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{
		OnStateChange: func(s model.TimerState) { states = append(states, s) },
	})

	g.PressDown()
	fake.Advance(300 * time.Millisecond)
	g.PressUp()
	fake.Advance(time.Second)
	g.PressDown()

	want := []model.TimerState{model.StateReady, model.StateRunning, model.StateStopped}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}

func TestBackwardClockClampsToZero(t *testing.T) {
	m, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{})

	g.PressDown()
	fake.Advance(300 * time.Millisecond)
	g.PressUp()

	start := fake.Now()
	fake.Set(start.Add(-2 * time.Second))
	if got := m.Elapsed(); got != 0 {
		t.Fatalf("elapsed with backward clock = %d, want 0", got)
	}
	if !m.ClockAnomaly() {
		t.Fatal("anomaly flag not set after backward clock")
	}
}

func TestCloseStopsTasks(t *testing.T) {
	m, g, fake := newTestMachine(t, model.CasePracticeConfig(), Hooks{})

	g.PressDown()
	fake.Advance(300 * time.Millisecond)
	g.PressUp()
	if fake.Active() != 1 {
		t.Fatalf("setup: %d tasks, want 1", fake.Active())
	}
	m.Close()
	if fake.Active() != 0 {
		t.Fatalf("%d tasks still scheduled after close", fake.Active())
	}
}
