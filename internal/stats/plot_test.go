package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/cubetui/internal/model"
)

func TestPlotSolveTrend(t *testing.T) {
	solves := []model.Solve{
		{TimeMs: 12000}, {TimeMs: 11000}, {TimeMs: 13000, Penalty: model.PenaltyPlus2},
		{TimeMs: 10000}, {TimeMs: 9500, Penalty: model.PenaltyDNF}, {TimeMs: 10500},
		{TimeMs: 9800}, {TimeMs: 9200},
	}
	series := []Series{
		{Name: "single", Values: SingleSeries(solves)},
		{Name: "ao5", Values: RollingSeries(solves, 5)},
	}

	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Solve times (s)", series, 10, 6); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Solve times (s)") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "scaled to its own range") {
		t.Fatalf("expected scale note in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	// Seconds ranges: the DNF is skipped, the +2 counts as 15s, and the
	// rolling ao5 bridges the DNF gap without dropping out.
	if !strings.Contains(out, "single: min=9.20 max=15.00") {
		t.Fatalf("unexpected single range in output:\n%s", out)
	}
	if !strings.Contains(out, "ao5: min=") {
		t.Fatalf("expected ao5 range in output:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 1 + 2 + 6 + 1 // title, note, ranges, plot rows, legend
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotAllDNFSessionIsEmpty(t *testing.T) {
	solves := []model.Solve{
		{TimeMs: 9000, Penalty: model.PenaltyDNF},
		{TimeMs: 9500, Penalty: model.PenaltyDNF},
	}
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Solve times (s)", []Series{
		{Name: "single", Values: SingleSeries(solves)},
	}, 10, 6)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for an all-DNF session, got:\n%s", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8AxisWidth()
	tests := []struct {
		total int
		want  int
	}{
		{total: 80, want: 80 - axisWidth},
		{total: 120, want: 120 - axisWidth},
		{total: axisWidth + 2, want: minPlotWidth}, // too narrow for a real plot
		{total: 0, want: minPlotWidth},
	}
	for _, tt := range tests {
		if got := PlotWidthFor(tt.total); got != tt.want {
			t.Fatalf("PlotWidthFor(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func utf8AxisWidth() int {
	return len([]rune(axisLabelTop)) + len([]rune(axisSeparator))
}
