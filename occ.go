package bwtsearch

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// rankTable holds, for every symbol code, the cumulative number of
// occurrences of that code in bwt[0..i].
type rankTable [][]int

func buildRankTable(bwt []int, sigma int) rankTable {
	t := make(rankTable, sigma)
	for c := range t {
		t[c] = make([]int, len(bwt))
	}
	running := make([]int, sigma)
	for i, code := range bwt {
		running[code]++
		for c := range t {
			t[c][i] = running[c]
		}
	}
	return t
}

// resolve returns the occurrences of code in bwt[0..i]. Interval arithmetic
// asks for i == -1 (nothing counted yet) and i == len (everything counted),
// so both are answered without touching the table bounds.
func (t rankTable) resolve(code, i int) int {
	counts := t[code]
	switch {
	case i == -1:
		return 0
	case i == len(counts):
		return counts[len(counts)-1]
	default:
		return counts[i]
	}
}

// Occurrences returns, for every symbol of bwt, the number of times it
// occurs in bwt[0..i] for each position i.
func Occurrences[S constraints.Ordered](bwt []S) map[S][]int {
	symbols := distinct(slices.Clone(bwt))
	codes := make([]int, len(bwt))
	for i, s := range bwt {
		codes[i], _ = slices.BinarySearch(symbols, s)
	}
	t := buildRankTable(codes, len(symbols))

	occ := make(map[S][]int, len(symbols))
	for c, s := range symbols {
		occ[s] = t[c]
	}
	return occ
}
