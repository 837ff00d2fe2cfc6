// Package scramble builds random-move scramble sequences.
package scramble

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Move counts per puzzle, matching common timer defaults.
var puzzleLengths = map[string]int{
	"2x2": 9,
	"3x3": 20,
	"4x4": 40,
}

var modifiers = []string{"", "'", "2"}

// Face moves grouped by rotation axis. Moves on the same axis commute, so
// a scramble never repeats a face and never chains three same-axis moves.
var axes = [][]string{
	{"U", "D"},
	{"L", "R"},
	{"F", "B"},
}

// wideAxes extends the move set for big cubes.
var wideAxes = [][]string{
	{"U", "D", "Uw", "Dw"},
	{"L", "R", "Lw", "Rw"},
	{"F", "B", "Fw", "Bw"},
}

// Generator produces randomized scrambles.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible output.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Puzzles lists the supported puzzle codes.
func Puzzles() []string {
	return []string{"2x2", "3x3", "4x4"}
}

// Generate returns a scramble for the given puzzle code.
func (g *Generator) Generate(puzzle string) (string, error) {
	length, ok := puzzleLengths[puzzle]
	if !ok {
		return "", fmt.Errorf("unknown puzzle %q (supported: %s)", puzzle, strings.Join(Puzzles(), ", "))
	}
	moveSet := axes
	if puzzle == "4x4" {
		moveSet = wideAxes
	}

	moves := make([]string, 0, length)
	prevAxis := -1
	axisRun := 0
	var prevFace string
	for len(moves) < length {
		axis := g.rnd.Intn(len(moveSet))
		if axis == prevAxis && axisRun >= 2 {
			continue
		}
		face := moveSet[axis][g.rnd.Intn(len(moveSet[axis]))]
		if face == prevFace {
			continue
		}
		if axis == prevAxis {
			axisRun++
		} else {
			axisRun = 1
		}
		prevAxis = axis
		prevFace = face
		moves = append(moves, face+modifiers[g.rnd.Intn(len(modifiers))])
	}
	return strings.Join(moves, " "), nil
}

// Invert reverses an algorithm: moves in reverse order with flipped
// modifiers. Used to build setup moves for case practice.
func Invert(alg string) string {
	fields := strings.Fields(alg)
	out := make([]string, 0, len(fields))
	for i := len(fields) - 1; i >= 0; i-- {
		move := fields[i]
		switch {
		case strings.HasSuffix(move, "'"):
			out = append(out, strings.TrimSuffix(move, "'"))
		case strings.HasSuffix(move, "2"):
			out = append(out, move)
		default:
			out = append(out, move+"'")
		}
	}
	return strings.Join(out, " ")
}
