// Package timer implements the solve timer: a hold-to-start gate in front
// of a six-state lifecycle machine with optional inspection and a post-stop
// cooldown.
package timer

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/verte-zerg/cubetui/internal/clock"
	"github.com/verte-zerg/cubetui/internal/model"
)

// Display refresh cadence while running. The shown value is always
// recomputed from the start timestamp, so a late tick cannot skew it.
const refreshInterval = 10 * time.Millisecond

const inspectionTickInterval = time.Second

// FSM event names.
const (
	evInspect = "inspect"
	evArm     = "arm"
	evBrace   = "brace"
	evStart   = "start"
	evAbort   = "abort"
	evResume  = "resume"
	evStop    = "stop"
	evCancel  = "cancel"
	evExpire  = "expire"
)

// Hooks receive timer notifications. Nil hooks are skipped. Hooks are
// invoked outside the machine lock and may call back into the machine.
type Hooks struct {
	OnStateChange    func(model.TimerState)
	OnComplete       func(elapsedMs int64)
	OnInspectionTick func(secondsRemaining int)
	OnTick           func(elapsedMs int64)
}

// Machine is the solve timer state machine. One instance serves one timer;
// instances share nothing. The same machine handles full solves and case
// practice, differing only in TimerConfig.
type Machine struct {
	mu    sync.Mutex
	cfg   model.TimerConfig
	clk   clock.Clock
	sched clock.Scheduler
	hooks Hooks
	fsm   *fsm.FSM

	startedAt        time.Time
	stoppedAt        time.Time
	lastElapsedMs    int64
	inspectionEndsAt time.Time
	lastInspSecs     int

	refreshTask clock.Task
	inspectTask clock.Task

	anomaly bool
	closed  bool

	pending []func()
}

// NewMachine validates cfg and builds a timer in the idle state. clk and
// sched may be nil, in which case the system clock and a ticker-backed
// scheduler are used.
func NewMachine(cfg model.TimerConfig, clk clock.Clock, sched clock.Scheduler, hooks Hooks) (*Machine, error) {
	if cfg.HoldDuration <= 0 {
		return nil, fmt.Errorf("hold duration must be positive, got %v", cfg.HoldDuration)
	}
	if cfg.Cooldown < 0 {
		return nil, fmt.Errorf("cooldown must not be negative, got %v", cfg.Cooldown)
	}
	if cfg.UseInspection {
		switch cfg.InspectionTime {
		case 8 * time.Second, 15 * time.Second, 30 * time.Second:
		default:
			return nil, fmt.Errorf("inspection time must be 8s, 15s or 30s, got %v", cfg.InspectionTime)
		}
	}
	if clk == nil {
		clk = clock.System()
	}
	if sched == nil {
		sched = clock.NewScheduler()
	}

	m := &Machine{
		cfg:   cfg,
		clk:   clk,
		sched: sched,
		hooks: hooks,
	}
	m.fsm = fsm.NewFSM(
		model.StateIdle.String(),
		fsm.Events{
			{Name: evInspect, Src: []string{"idle", "stopped"}, Dst: "inspection"},
			{Name: evArm, Src: []string{"idle", "stopped"}, Dst: "ready"},
			{Name: evBrace, Src: []string{"inspection"}, Dst: "inspection_ready"},
			{Name: evStart, Src: []string{"ready", "inspection_ready"}, Dst: "running"},
			{Name: evAbort, Src: []string{"ready"}, Dst: "idle"},
			{Name: evResume, Src: []string{"inspection_ready"}, Dst: "inspection"},
			{Name: evStop, Src: []string{"running"}, Dst: "stopped"},
			{Name: evCancel, Src: []string{"ready", "inspection", "inspection_ready", "running"}, Dst: "idle"},
			{Name: evExpire, Src: []string{"inspection", "inspection_ready"}, Dst: "idle"},
		},
		fsm.Callbacks{
			"enter_state":        m.onEnterState,
			"enter_running":      m.onEnterRunning,
			"leave_running":      m.onLeaveRunning,
			"enter_idle":         m.onEnterIdle,
			"enter_stopped":      m.onEnterStopped,
			"after_" + evInspect: m.onInspectionBegin,
			"after_" + evStart:   m.onInspectionDone,
		},
	)
	return m, nil
}

// Config returns the immutable configuration of this instance.
func (m *Machine) Config() model.TimerConfig {
	return m.cfg
}

// State returns the current lifecycle state.
func (m *Machine) State() model.TimerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Machine) stateLocked() model.TimerState {
	switch m.fsm.Current() {
	case "ready":
		return model.StateReady
	case "inspection":
		return model.StateInspection
	case "inspection_ready":
		return model.StateInspectionReady
	case "running":
		return model.StateRunning
	case "stopped":
		return model.StateStopped
	default:
		return model.StateIdle
	}
}

// Arming reports whether a commit-start would begin timing right now.
func (m *Machine) Arming() bool {
	s := m.State()
	return s == model.StateReady || s == model.StateInspectionReady
}

// Elapsed returns the measured time in milliseconds: live while running,
// the final result while stopped, zero otherwise.
func (m *Machine) Elapsed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.stateLocked() {
	case model.StateRunning:
		return m.elapsedLocked()
	case model.StateStopped:
		return m.lastElapsedMs
	default:
		return 0
	}
}

func (m *Machine) elapsedLocked() int64 {
	d := m.clk.Now().Sub(m.startedAt)
	if d < 0 {
		m.anomaly = true
		return 0
	}
	return d.Milliseconds()
}

// InspectionRemaining returns the whole seconds left of inspection, or
// zero outside the inspection states.
func (m *Machine) InspectionRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.stateLocked() {
	case model.StateInspection, model.StateInspectionReady:
		return m.inspectionRemainingLocked()
	default:
		return 0
	}
}

func (m *Machine) inspectionRemainingLocked() int {
	left := m.inspectionEndsAt.Sub(m.clk.Now())
	secs := int(math.Ceil(left.Seconds()))
	full := int(m.cfg.InspectionTime / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs > full {
		m.anomaly = true
		secs = full
	}
	return secs
}

// ClockAnomaly reports whether the clock was ever observed moving
// backwards. Sticky; informational only.
func (m *Machine) ClockAnomaly() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anomaly
}

// PressStart feeds the press-start trigger: it arms from idle/stopped,
// braces during inspection, and stops a running solve. Presses during the
// post-stop cooldown are dropped.
func (m *Machine) PressStart() {
	m.mu.Lock()
	switch m.stateLocked() {
	case model.StateIdle, model.StateStopped:
		if m.stateLocked() == model.StateStopped && m.clk.Now().Sub(m.stoppedAt) < m.cfg.Cooldown {
			break
		}
		if m.cfg.UseInspection {
			m.fireLocked(evInspect)
		} else {
			m.fireLocked(evArm)
		}
	case model.StateInspection:
		m.fireLocked(evBrace)
	case model.StateRunning:
		m.lastElapsedMs = m.elapsedLocked()
		m.fireLocked(evStop)
	}
	m.flushLocked()
}

// CommitStart begins timing from an arming state.
func (m *Machine) CommitStart() {
	m.mu.Lock()
	switch m.stateLocked() {
	case model.StateReady, model.StateInspectionReady:
		m.fireLocked(evStart)
	}
	m.flushLocked()
}

// AbortStart backs out of an arming state after a too-short hold: ready
// returns to idle, inspection-ready resumes inspection.
func (m *Machine) AbortStart() {
	m.mu.Lock()
	switch m.stateLocked() {
	case model.StateReady:
		m.fireLocked(evAbort)
	case model.StateInspectionReady:
		m.fireLocked(evResume)
	}
	m.flushLocked()
}

// Cancel discards the attempt in progress and returns to idle. It never
// emits a completion.
func (m *Machine) Cancel() {
	m.mu.Lock()
	switch m.stateLocked() {
	case model.StateReady, model.StateInspection, model.StateInspectionReady, model.StateRunning:
		m.fireLocked(evCancel)
	}
	m.flushLocked()
}

// Close stops all scheduled work. The machine must not be used afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.stopRefreshLocked()
	m.stopInspectLocked()
	m.mu.Unlock()
}

// fireLocked runs an FSM event. Callers pre-check the source state, so a
// transition error here cannot occur.
func (m *Machine) fireLocked(event string) {
	_ = m.fsm.Event(context.Background(), event)
}

// flushLocked releases the lock and runs hook calls queued by callbacks.
func (m *Machine) flushLocked() {
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (m *Machine) onEnterState(_ context.Context, _ *fsm.Event) {
	if m.hooks.OnStateChange == nil {
		return
	}
	state := m.stateLocked()
	hook := m.hooks.OnStateChange
	m.pending = append(m.pending, func() { hook(state) })
}

func (m *Machine) onEnterRunning(_ context.Context, _ *fsm.Event) {
	m.startedAt = m.clk.Now()
	m.stopRefreshLocked()
	if m.closed {
		return
	}
	m.refreshTask = m.sched.Every(refreshInterval, m.refreshTick)
}

func (m *Machine) onLeaveRunning(_ context.Context, _ *fsm.Event) {
	m.stopRefreshLocked()
}

func (m *Machine) onEnterIdle(_ context.Context, _ *fsm.Event) {
	m.stopInspectLocked()
}

func (m *Machine) onEnterStopped(_ context.Context, _ *fsm.Event) {
	m.stoppedAt = m.clk.Now()
	if m.hooks.OnComplete == nil {
		return
	}
	elapsed := m.lastElapsedMs
	hook := m.hooks.OnComplete
	m.pending = append(m.pending, func() { hook(elapsed) })
}

func (m *Machine) onInspectionBegin(_ context.Context, _ *fsm.Event) {
	m.inspectionEndsAt = m.clk.Now().Add(m.cfg.InspectionTime)
	m.lastInspSecs = int(m.cfg.InspectionTime / time.Second)
	m.stopInspectLocked()
	if m.closed {
		return
	}
	m.inspectTask = m.sched.Every(inspectionTickInterval, m.inspectionTick)
}

func (m *Machine) onInspectionDone(_ context.Context, _ *fsm.Event) {
	m.stopInspectLocked()
}

func (m *Machine) stopRefreshLocked() {
	if m.refreshTask != nil {
		m.refreshTask.Stop()
		m.refreshTask = nil
	}
}

func (m *Machine) stopInspectLocked() {
	if m.inspectTask != nil {
		m.inspectTask.Stop()
		m.inspectTask = nil
	}
}

func (m *Machine) refreshTick() {
	m.mu.Lock()
	if m.stateLocked() != model.StateRunning {
		m.mu.Unlock()
		return
	}
	elapsed := m.elapsedLocked()
	hook := m.hooks.OnTick
	m.mu.Unlock()
	if hook != nil {
		hook(elapsed)
	}
}

// inspectionTick runs once per second during inspection. The remaining
// value is derived from the deadline, so a delayed tick reports the right
// second and expiry cannot be missed.
func (m *Machine) inspectionTick() {
	m.mu.Lock()
	switch m.stateLocked() {
	case model.StateInspection, model.StateInspectionReady:
	default:
		m.mu.Unlock()
		return
	}
	secs := m.inspectionRemainingLocked()
	if secs <= 0 {
		m.fireLocked(evExpire)
		m.flushLocked()
		return
	}
	var tick func()
	if secs != m.lastInspSecs && m.hooks.OnInspectionTick != nil {
		m.lastInspSecs = secs
		hook := m.hooks.OnInspectionTick
		tick = func() { hook(secs) }
	}
	m.mu.Unlock()
	if tick != nil {
		tick()
	}
}
