// Package cases holds the static algorithm case catalog.
package cases

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/cubetui/internal/scramble"
)

// Case is one algorithm from the catalog. Algorithms are opaque move
// strings; nothing here simulates cube state.
type Case struct {
	ID        string
	Name      string
	Group     string
	Algorithm string
}

// Setup returns the moves that produce this case from a solved cube: the
// inverse of the algorithm.
func (c Case) Setup() string {
	return scramble.Invert(c.Algorithm)
}

var catalog = []Case{
	// PLL
	{ID: "pll-aa", Name: "Aa Perm", Group: "PLL", Algorithm: "x R' U R' D2 R U' R' D2 R2 x'"},
	{ID: "pll-ab", Name: "Ab Perm", Group: "PLL", Algorithm: "x R2 D2 R U R' D2 R U' R x'"},
	{ID: "pll-e", Name: "E Perm", Group: "PLL", Algorithm: "x' R U' R' D R U R' D' R U R' D R U' R' D' x"},
	{ID: "pll-f", Name: "F Perm", Group: "PLL", Algorithm: "R' U' F' R U R' U' R' F R2 U' R' U' R U R' U R"},
	{ID: "pll-ga", Name: "Ga Perm", Group: "PLL", Algorithm: "R2 U R' U R' U' R U' R2 D U' R' U R D'"},
	{ID: "pll-gb", Name: "Gb Perm", Group: "PLL", Algorithm: "R' U' R U D' R2 U R' U R U' R U' R2 D"},
	{ID: "pll-gc", Name: "Gc Perm", Group: "PLL", Algorithm: "R2 U' R U' R U R' U R2 D' U R U' R' D"},
	{ID: "pll-gd", Name: "Gd Perm", Group: "PLL", Algorithm: "R U R' U' D R2 U' R U' R' U R' U R2 D'"},
	{ID: "pll-h", Name: "H Perm", Group: "PLL", Algorithm: "M2 U M2 U2 M2 U M2"},
	{ID: "pll-ja", Name: "Ja Perm", Group: "PLL", Algorithm: "x R2 F R F' R U2 r' U r U2 x'"},
	{ID: "pll-jb", Name: "Jb Perm", Group: "PLL", Algorithm: "R U R' F' R U R' U' R' F R2 U' R'"},
	{ID: "pll-na", Name: "Na Perm", Group: "PLL", Algorithm: "R U R' U R U R' F' R U R' U' R' F R2 U' R' U2 R U' R'"},
	{ID: "pll-nb", Name: "Nb Perm", Group: "PLL", Algorithm: "R' U R U' R' F' U' F R U R' F R' F' R U' R"},
	{ID: "pll-ra", Name: "Ra Perm", Group: "PLL", Algorithm: "R U' R' U' R U R D R' U' R D' R' U2 R'"},
	{ID: "pll-rb", Name: "Rb Perm", Group: "PLL", Algorithm: "R2 F R U R U' R' F' R U2 R' U2 R"},
	{ID: "pll-t", Name: "T Perm", Group: "PLL", Algorithm: "R U R' U' R' F R2 U' R' U' R U R' F'"},
	{ID: "pll-ua", Name: "Ua Perm", Group: "PLL", Algorithm: "R U' R U R U R U' R' U' R2"},
	{ID: "pll-ub", Name: "Ub Perm", Group: "PLL", Algorithm: "R2 U R U R' U' R' U' R' U R'"},
	{ID: "pll-v", Name: "V Perm", Group: "PLL", Algorithm: "R' U R' U' R D' R' D R' U D' R2 U' R2 D R2"},
	{ID: "pll-y", Name: "Y Perm", Group: "PLL", Algorithm: "F R U' R' U' R U R' F' R U R' U' R' F R F'"},
	{ID: "pll-z", Name: "Z Perm", Group: "PLL", Algorithm: "M' U M2 U M2 U M' U2 M2"},
	// OCLL (corner orientation, edges oriented)
	{ID: "ocll-sune", Name: "Sune", Group: "OCLL", Algorithm: "R U R' U R U2 R'"},
	{ID: "ocll-antisune", Name: "Antisune", Group: "OCLL", Algorithm: "R U2 R' U' R U' R'"},
	{ID: "ocll-h", Name: "H", Group: "OCLL", Algorithm: "R U R' U R U' R' U R U2 R'"},
	{ID: "ocll-pi", Name: "Pi", Group: "OCLL", Algorithm: "R U2 R2 U' R2 U' R2 U2 R"},
	{ID: "ocll-l", Name: "Bowtie", Group: "OCLL", Algorithm: "F' r U R' U' r' F R"},
	{ID: "ocll-t", Name: "T", Group: "OCLL", Algorithm: "r U R' U' r' F R F'"},
	{ID: "ocll-u", Name: "Headlights", Group: "OCLL", Algorithm: "R2 D R' U2 R D' R' U2 R'"},
}

// All returns the full catalog in display order.
func All() []Case {
	out := make([]Case, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a case by its identifier.
func ByID(id string) (Case, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("unknown case %q (list with: cubetui cases)", id)
}

// Groups returns the distinct case groups in catalog order.
func Groups() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, c := range catalog {
		if _, ok := seen[c.Group]; ok {
			continue
		}
		seen[c.Group] = struct{}{}
		out = append(out, c.Group)
	}
	return out
}
