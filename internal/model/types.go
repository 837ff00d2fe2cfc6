// Package model defines shared data structures.
package model

import (
	"math"
	"time"
)

// Penalty marks the WCA penalty applied to a solve.
type Penalty int

// Penalty values.
const (
	PenaltyNone Penalty = iota
	PenaltyPlus2
	PenaltyDNF
)

// String returns the conventional WCA suffix for a penalty.
func (p Penalty) String() string {
	switch p {
	case PenaltyPlus2:
		return "+2"
	case PenaltyDNF:
		return "DNF"
	default:
		return ""
	}
}

// TimeDNF is the effective time of a DNF solve. It sorts after every real
// time and never contributes to an average.
const TimeDNF int64 = math.MaxInt64

// Solve is a single recorded attempt. TimeMs and Scramble are fixed at
// creation; Penalty and Notes may be edited afterwards. A non-empty CaseID
// marks a case-practice drill rather than a full solve.
type Solve struct {
	ID        int64
	SessionID int64
	TimeMs    int64
	Puzzle    string
	Scramble  string
	CaseID    string
	Penalty   Penalty
	Notes     string
	Date      time.Time
}

// EffectiveTime returns the time used for statistics: TimeDNF for a DNF,
// the raw time plus 2000ms for a +2, the raw time otherwise.
func (s Solve) EffectiveTime() int64 {
	switch s.Penalty {
	case PenaltyDNF:
		return TimeDNF
	case PenaltyPlus2:
		return s.TimeMs + 2000
	default:
		return s.TimeMs
	}
}

// TimerState enumerates the solve timer lifecycle.
type TimerState int

// Timer states. A timer is always in exactly one of these.
const (
	StateIdle TimerState = iota
	StateReady
	StateInspection
	StateInspectionReady
	StateRunning
	StateStopped
)

// String returns a lowercase state name, also used as the FSM state key.
func (s TimerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateInspection:
		return "inspection"
	case StateInspectionReady:
		return "inspection_ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TimerConfig fixes a timer instance's behavior. It is immutable for the
// life of the instance; changing it means constructing a new timer.
type TimerConfig struct {
	HoldDuration   time.Duration
	Cooldown       time.Duration
	UseInspection  bool
	InspectionTime time.Duration
}

// Default timer settings. Case practice uses zero cooldown and no
// inspection but the same hold threshold.
const (
	DefaultHoldDuration   = 250 * time.Millisecond
	DefaultCooldown       = 500 * time.Millisecond
	DefaultInspectionTime = 15 * time.Second
)

// FullSolveConfig returns the configuration for regular timed solves.
func FullSolveConfig(useInspection bool, inspectionTime time.Duration) TimerConfig {
	return TimerConfig{
		HoldDuration:   DefaultHoldDuration,
		Cooldown:       DefaultCooldown,
		UseInspection:  useInspection,
		InspectionTime: inspectionTime,
	}
}

// CasePracticeConfig returns the configuration for algorithm drilling:
// no inspection, no cooldown between attempts.
func CasePracticeConfig() TimerConfig {
	return TimerConfig{
		HoldDuration: DefaultHoldDuration,
	}
}

// StatisticsResult holds the derived statistics for a solve history.
// Nil fields mean there is not enough data, or the window is a DNF average.
type StatisticsResult struct {
	CurrentSingle *int64
	Ao5           *int64
	Ao12          *int64
	Ao50          *int64
	Ao100         *int64
	BestSingle    *int64
	BestAo5       *int64
	BestAo12      *int64
	BestAo50      *int64
	BestAo100     *int64
}

// PBKind identifies which statistic a personal best applies to.
type PBKind string

// Personal best kinds.
const (
	PBSingle PBKind = "single"
	PBAo5    PBKind = "ao5"
	PBAo12   PBKind = "ao12"
	PBAo50   PBKind = "ao50"
	PBAo100  PBKind = "ao100"
)

// PersonalBest is a stored best value for one statistic. Records are kept
// per puzzle; drill times never enter them.
type PersonalBest struct {
	Puzzle     string
	Kind       PBKind
	TimeMs     int64
	AchievedAt time.Time
}

// PersonalBestEvent reports a freshly beaten record. The contributing solve
// IDs identify the window that produced the value.
type PersonalBestEvent struct {
	Kind     PBKind
	TimeMs   int64
	SolveIDs []int64
}

// StatsConfig defines filters for stats output. A case filter selects that
// case's drills; a puzzle filter without a case selects full solves of that
// puzzle only.
type StatsConfig struct {
	Puzzle string
	CaseID string
	Since  *time.Time
	Last   int
}
