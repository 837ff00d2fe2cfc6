// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"

	"github.com/verte-zerg/cubetui/internal/model"
)

// Window sizes for the tracked rolling averages.
const (
	WindowAo5   = 5
	WindowAo12  = 12
	WindowAo50  = 50
	WindowAo100 = 100
)

// EffectiveTimes maps solves to the times used for averaging, with DNFs as
// model.TimeDNF.
func EffectiveTimes(solves []model.Solve) []int64 {
	times := make([]int64, len(solves))
	for i, s := range solves {
		times[i] = s.EffectiveTime()
	}
	return times
}

// WindowAverage computes the WCA average of the last n entries of times.
// It returns nil when fewer than n times exist or the window is a DNF
// average: more than one DNF, or for n below 5 any DNF at all. For n of 5
// and up the single best and worst entries are trimmed before the mean.
func WindowAverage(times []int64, n int) *int64 {
	if n <= 0 || len(times) < n {
		return nil
	}
	window := times[len(times)-n:]

	dnfs := 0
	for _, t := range window {
		if t == model.TimeDNF {
			dnfs++
		}
	}
	if dnfs > 1 {
		return nil
	}

	if n < 5 {
		if dnfs > 0 {
			return nil
		}
		return meanMs(window)
	}

	sorted := make([]int64, n)
	copy(sorted, window)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	trimmed := sorted[1 : n-1]
	for _, t := range trimmed {
		if t == model.TimeDNF {
			return nil
		}
	}
	return meanMs(trimmed)
}

func meanMs(times []int64) *int64 {
	var sum float64
	for _, t := range times {
		sum += float64(t)
	}
	v := int64(math.Round(sum / float64(len(times))))
	return &v
}

// CurrentAverage is the WindowAverage over the most recent n times.
func CurrentAverage(times []int64, n int) *int64 {
	return WindowAverage(times, n)
}

// BestAverage scans every contiguous n-window oldest to newest and returns
// the lowest average together with the start index of its window. Ties
// keep the earliest window. Returns (nil, -1) when no window has a valid
// average.
func BestAverage(times []int64, n int) (*int64, int) {
	if n <= 0 || len(times) < n {
		return nil, -1
	}
	var best *int64
	bestStart := -1
	for i := 0; i+n <= len(times); i++ {
		avg := WindowAverage(times[:i+n], n)
		if avg == nil {
			continue
		}
		if best == nil || *avg < *best {
			best = avg
			bestStart = i
		}
	}
	return best, bestStart
}

// BestSingle returns the lowest effective time and its index, skipping
// DNFs. Returns (nil, -1) for an empty or all-DNF history.
func BestSingle(solves []model.Solve) (*int64, int) {
	var best *int64
	idx := -1
	for i, s := range solves {
		t := s.EffectiveTime()
		if t == model.TimeDNF {
			continue
		}
		if best == nil || t < *best {
			v := t
			best = &v
			idx = i
		}
	}
	return best, idx
}

// Compute derives display statistics: current values from the session
// history, best values from the all-time history. An empty all falls back
// to the session, so a fresh database still reports bests.
func Compute(session, all []model.Solve) model.StatisticsResult {
	if len(all) == 0 {
		all = session
	}
	sessionTimes := EffectiveTimes(session)
	allTimes := EffectiveTimes(all)

	var result model.StatisticsResult
	if len(session) > 0 {
		last := session[len(session)-1].EffectiveTime()
		if last != model.TimeDNF {
			result.CurrentSingle = &last
		}
	}
	result.Ao5 = CurrentAverage(sessionTimes, WindowAo5)
	result.Ao12 = CurrentAverage(sessionTimes, WindowAo12)
	result.Ao50 = CurrentAverage(sessionTimes, WindowAo50)
	result.Ao100 = CurrentAverage(sessionTimes, WindowAo100)

	result.BestSingle, _ = BestSingle(all)
	result.BestAo5, _ = BestAverage(allTimes, WindowAo5)
	result.BestAo12, _ = BestAverage(allTimes, WindowAo12)
	result.BestAo50, _ = BestAverage(allTimes, WindowAo50)
	result.BestAo100, _ = BestAverage(allTimes, WindowAo100)
	return result
}
