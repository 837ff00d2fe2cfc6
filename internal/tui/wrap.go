package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapMoves word-wraps a move sequence to the given display width,
// breaking only between moves.
func wrapMoves(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out strings.Builder
	lineWidth := 0
	for i, move := range strings.Fields(s) {
		w := runewidth.StringWidth(move)
		switch {
		case i == 0:
			// First move always starts the line.
		case lineWidth+1+w > width:
			out.WriteRune('\n')
			lineWidth = 0
		default:
			out.WriteRune(' ')
			lineWidth++
		}
		out.WriteString(move)
		lineWidth += w
	}
	return out.String()
}
