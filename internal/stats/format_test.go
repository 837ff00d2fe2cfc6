package stats

import (
	"testing"

	"github.com/verte-zerg/cubetui/internal/model"
)

func TestFormatMs(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0.00"},
		{9340, "9.34"},
		{59999, "59.99"},
		{60000, "1:00.00"},
		{83450, "1:23.45"},
		{-5, "0.00"},
	}
	for _, c := range cases {
		if got := FormatMs(c.ms); got != c.want {
			t.Fatalf("FormatMs(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestFormatMaybe(t *testing.T) {
	if got := FormatMaybe(nil); got != "-" {
		t.Fatalf("FormatMaybe(nil) = %q, want -", got)
	}
	v := int64(12340)
	if got := FormatMaybe(&v); got != "12.34" {
		t.Fatalf("FormatMaybe(12340) = %q, want 12.34", got)
	}
}

func TestFormatSolve(t *testing.T) {
	if got := FormatSolve(model.Solve{TimeMs: 9340, Penalty: model.PenaltyDNF}); got != "DNF" {
		t.Fatalf("DNF solve = %q", got)
	}
	if got := FormatSolve(model.Solve{TimeMs: 9340, Penalty: model.PenaltyPlus2}); got != "11.34+" {
		t.Fatalf("+2 solve = %q, want 11.34+", got)
	}
	if got := FormatSolve(model.Solve{TimeMs: 9340}); got != "9.34" {
		t.Fatalf("clean solve = %q, want 9.34", got)
	}
}
