package stats

import (
	"fmt"

	"github.com/verte-zerg/cubetui/internal/model"
)

// FormatMs renders a millisecond value as a timer reading: centisecond
// precision, minutes once past sixty seconds.
func FormatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := (ms % 1000) / 10
	secs := ms / 1000
	if secs < 60 {
		return fmt.Sprintf("%d.%02d", secs, cs)
	}
	return fmt.Sprintf("%d:%02d.%02d", secs/60, secs%60, cs)
}

// FormatMaybe renders an optional statistic, with a dash for absent data.
func FormatMaybe(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return FormatMs(*ms)
}

// FormatSolve renders a solve's result including its penalty.
func FormatSolve(s model.Solve) string {
	switch s.Penalty {
	case model.PenaltyDNF:
		return "DNF"
	case model.PenaltyPlus2:
		return FormatMs(s.TimeMs+2000) + "+"
	default:
		return FormatMs(s.TimeMs)
	}
}
