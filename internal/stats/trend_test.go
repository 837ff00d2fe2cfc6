package stats

import (
	"testing"

	"github.com/verte-zerg/cubetui/internal/model"
)

func TestSingleSeriesSkipsDNFs(t *testing.T) {
	history := []model.Solve{
		solve(1, 10000, model.PenaltyNone),
		solve(2, 9000, model.PenaltyDNF),
		solve(3, 8000, model.PenaltyNone),
	}
	got := SingleSeries(history)
	if len(got) != 2 || got[0] != 10.0 || got[1] != 8.0 {
		t.Fatalf("series = %v, want [10 8]", got)
	}
}

func TestRollingSeriesLength(t *testing.T) {
	history := solves(10000, 9000, 8000, 12000, 7000, 9500, 8800)
	got := RollingSeries(history, 5)
	// ao5 exists from the fifth solve on: three points.
	if len(got) != 3 {
		t.Fatalf("series length = %d, want 3", len(got))
	}
}

func TestMovingAverageWindow(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	got := MovingAverage(values, 3)
	if len(got) != len(values) {
		t.Fatalf("length = %d, want %d", len(got), len(values))
	}
	if got[5] != 5 {
		t.Fatalf("last value = %v, want 5 (mean of 4,5,6)", got[5])
	}
}

func TestSparklineFlat(t *testing.T) {
	got := Sparkline([]float64{2, 2, 2})
	if len(got) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(got))
	}
}
