package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/cubetui/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SingleSeries returns the effective times of non-DNF solves in seconds,
// oldest first, for trend plotting.
func SingleSeries(solves []model.Solve) []float64 {
	out := make([]float64, 0, len(solves))
	for _, s := range solves {
		t := s.EffectiveTime()
		if t == model.TimeDNF {
			continue
		}
		out = append(out, float64(t)/1000.0)
	}
	return out
}

// RollingSeries returns the rolling average-of-n in seconds at each point
// of the history where it exists. DNF averages leave gaps, carried over
// from the previous value so the curve stays connected.
func RollingSeries(solves []model.Solve, n int) []float64 {
	times := EffectiveTimes(solves)
	out := make([]float64, 0, len(solves))
	var prev float64
	hasPrev := false
	for i := n; i <= len(times); i++ {
		avg := WindowAverage(times[:i], n)
		if avg == nil {
			if hasPrev {
				out = append(out, prev)
			}
			continue
		}
		prev = float64(*avg) / 1000.0
		hasPrev = true
		out = append(out, prev)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
