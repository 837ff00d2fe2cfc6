package tui

import "testing"

func TestWrapMoves(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits on one line", in: "R U R' U'", width: 20, want: "R U R' U'"},
		{name: "breaks between moves", in: "R U R' U'", width: 5, want: "R U\nR' U'"},
		{name: "break before wide move", in: "R U2 F' D", width: 4, want: "R U2\nF' D"},
		{name: "single move", in: "R2", width: 1, want: "R2"},
		{name: "move wider than line stands alone", in: "Rw2' Uw2", width: 3, want: "Rw2'\nUw2"},
		{name: "empty", in: "", width: 10, want: ""},
		{name: "zero width passes through", in: "R U R'", width: 0, want: "R U R'"},
	}
	for _, tt := range tests {
		if got := wrapMoves(tt.in, tt.width); got != tt.want {
			t.Fatalf("%s: wrapMoves(%q, %d) = %q, want %q", tt.name, tt.in, tt.width, got, tt.want)
		}
	}
}
