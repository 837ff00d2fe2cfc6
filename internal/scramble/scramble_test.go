package scramble

import (
	"strings"
	"testing"
)

func faceOf(move string) string {
	return strings.TrimRight(move, "'2")
}

func axisOf(move string) int {
	switch faceOf(move)[0] {
	case 'U', 'D':
		return 0
	case 'L', 'R':
		return 1
	default:
		return 2
	}
}

func TestGenerateLengthAndConstraints(t *testing.T) {
	g := NewSeeded(42)
	for _, puzzle := range Puzzles() {
		s, err := g.Generate(puzzle)
		if err != nil {
			t.Fatalf("Generate(%s): %v", puzzle, err)
		}
		moves := strings.Fields(s)
		if len(moves) != puzzleLengths[puzzle] {
			t.Fatalf("%s scramble has %d moves, want %d", puzzle, len(moves), puzzleLengths[puzzle])
		}
		for i := 1; i < len(moves); i++ {
			if faceOf(moves[i]) == faceOf(moves[i-1]) {
				t.Fatalf("%s scramble repeats face: %s", puzzle, s)
			}
		}
		for i := 2; i < len(moves); i++ {
			if axisOf(moves[i]) == axisOf(moves[i-1]) && axisOf(moves[i-1]) == axisOf(moves[i-2]) {
				t.Fatalf("%s scramble chains three same-axis moves: %s", puzzle, s)
			}
		}
	}
}

func TestGenerateUnknownPuzzle(t *testing.T) {
	if _, err := NewSeeded(1).Generate("5x5"); err == nil {
		t.Fatal("expected error for unsupported puzzle")
	}
}

func TestGenerateSeededIsReproducible(t *testing.T) {
	a, err := NewSeeded(7).Generate("3x3")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := NewSeeded(7).Generate("3x3")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a != b {
		t.Fatalf("same seed produced %q and %q", a, b)
	}
}

func TestInvert(t *testing.T) {
	cases := []struct {
		alg  string
		want string
	}{
		{"R U R' U'", "U R U' R'"},
		{"F2 R2", "R2 F2"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Invert(c.alg); got != c.want {
			t.Fatalf("Invert(%q) = %q, want %q", c.alg, got, c.want)
		}
	}
}
