package stats

import (
	"testing"

	"github.com/verte-zerg/cubetui/internal/model"
)

func solve(id int64, ms int64, p model.Penalty) model.Solve {
	return model.Solve{ID: id, TimeMs: ms, Penalty: p}
}

func solves(times ...int64) []model.Solve {
	out := make([]model.Solve, len(times))
	for i, t := range times {
		out[i] = solve(int64(i+1), t, model.PenaltyNone)
	}
	return out
}

func TestWindowAverageTrimsExtremes(t *testing.T) {
	got := WindowAverage([]int64{10000, 10000, 10000, 10000, 10000}, 5)
	if got == nil || *got != 10000 {
		t.Fatalf("ao5 of five equal times = %v, want 10000", got)
	}

	got = WindowAverage([]int64{8000, 9000, 10000, 11000, 30000}, 5)
	if got == nil || *got != 10000 {
		t.Fatalf("ao5 with outlier = %v, want 10000 (trim drops 8000 and 30000)", got)
	}
}

func TestWindowAverageSmallWindowsNoTrim(t *testing.T) {
	got := WindowAverage([]int64{8000, 9000, 10000}, 3)
	if got == nil || *got != 9000 {
		t.Fatalf("mo3 = %v, want 9000", got)
	}

	if got := WindowAverage([]int64{8000, model.TimeDNF, 10000}, 3); got != nil {
		t.Fatalf("mo3 with DNF = %v, want nil", got)
	}
}

func TestWindowAverageDNFRules(t *testing.T) {
	// One DNF is absorbed by the trim.
	got := WindowAverage([]int64{10000, 10000, 10000, 10000, model.TimeDNF}, 5)
	if got == nil || *got != 10000 {
		t.Fatalf("ao5 with one DNF = %v, want 10000", got)
	}

	// Two DNFs make the average itself a DNF.
	if got := WindowAverage([]int64{10000, 10000, 10000, model.TimeDNF, model.TimeDNF}, 5); got != nil {
		t.Fatalf("ao5 with two DNFs = %v, want nil", got)
	}
}

func TestWindowAverageInsufficientData(t *testing.T) {
	if got := WindowAverage([]int64{10000, 10000}, 5); got != nil {
		t.Fatalf("ao5 over 2 times = %v, want nil", got)
	}
}

func TestBestAverageScansAllWindows(t *testing.T) {
	times := []int64{10000, 9000, 8000, 12000, 7000}
	got, start := BestAverage(times, 3)
	if got == nil || *got != 9000 {
		t.Fatalf("best mo3 = %v, want 9000", got)
	}
	// Ties resolve to the earliest window: [10000 9000 8000] at index 0,
	// not [8000 12000 7000] at index 2.
	if start != 0 {
		t.Fatalf("best mo3 window start = %d, want 0", start)
	}
}

func TestBestSingleIgnoresDNFs(t *testing.T) {
	history := []model.Solve{
		solve(1, 9000, model.PenaltyNone),
		solve(2, 5000, model.PenaltyDNF),
		solve(3, 8000, model.PenaltyPlus2),
	}
	got, idx := BestSingle(history)
	if got == nil || *got != 9000 {
		t.Fatalf("best single = %v, want 9000 (DNF skipped, +2 makes 10000)", got)
	}
	if idx != 0 {
		t.Fatalf("best single index = %d, want 0", idx)
	}

	allDNF := []model.Solve{solve(1, 5000, model.PenaltyDNF), solve(2, 6000, model.PenaltyDNF)}
	if got, _ := BestSingle(allDNF); got != nil {
		t.Fatalf("best single of all-DNF history = %v, want nil", got)
	}
}

func TestEffectiveTimeNeverNegative(t *testing.T) {
	s := solve(1, 0, model.PenaltyPlus2)
	if s.EffectiveTime() != 2000 {
		t.Fatalf("effective time = %d, want 2000", s.EffectiveTime())
	}
}

func TestComputeSplitsSessionAndAllTime(t *testing.T) {
	session := solves(10000, 11000, 9000, 12000)
	all := solves(
		8000, 9000, 10000, 11000, 9500, 9800, 10200, 9100, 8800, 9300,
		9600, 9900, 10100, 8700, 9400, 9200, 10500, 8900, 9700, 10000,
	)

	got := Compute(session, all)
	if got.Ao12 != nil {
		t.Fatalf("session ao12 over 4 solves = %v, want nil", got.Ao12)
	}
	if got.BestAo12 == nil {
		t.Fatal("all-time best ao12 over 20 solves is nil")
	}
	if got.Ao5 != nil {
		t.Fatalf("session ao5 over 4 solves = %v, want nil", got.Ao5)
	}
	if got.CurrentSingle == nil || *got.CurrentSingle != 12000 {
		t.Fatalf("current single = %v, want 12000", got.CurrentSingle)
	}
	if got.BestSingle == nil || *got.BestSingle != 8000 {
		t.Fatalf("best single = %v, want 8000", got.BestSingle)
	}
}

func TestComputeFallsBackToSession(t *testing.T) {
	session := solves(10000, 9000, 8000, 12000, 7000)
	got := Compute(session, nil)
	if got.BestSingle == nil || *got.BestSingle != 7000 {
		t.Fatalf("best single = %v, want 7000 from session fallback", got.BestSingle)
	}
	if got.Ao5 == nil {
		t.Fatal("session ao5 over 5 solves is nil")
	}
}

func TestComputeEmptySessionKeepsBests(t *testing.T) {
	all := solves(10000, 9000, 8000, 12000, 7000)
	got := Compute(nil, all)
	if got.CurrentSingle != nil || got.Ao5 != nil {
		t.Fatalf("current stats of empty session = %+v, want nil", got)
	}
	if got.BestSingle == nil || *got.BestSingle != 7000 {
		t.Fatalf("best single = %v, want 7000", got.BestSingle)
	}
	if got.BestAo5 == nil {
		t.Fatal("best ao5 is nil with 5 all-time solves")
	}
}
