package bwtsearch

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// BaseCounts returns, for every distinct symbol of reference, how many
// symbols of reference are strictly smaller than it.
func BaseCounts[S constraints.Ordered](reference []S) map[S]int {
	symbols := distinct(slices.Clone(reference))
	codes := make([]int, len(reference))
	for i, s := range reference {
		c, _ := slices.BinarySearch(symbols, s)
		codes[i] = c
	}
	base := baseCounts(codes, len(symbols))

	counts := make(map[S]int, len(symbols))
	for c, s := range symbols {
		counts[s] = base[c]
	}
	return counts
}

// baseCounts is the dense form: base[c] counts the codes smaller than c.
func baseCounts(codes []int, sigma int) []int {
	base := make([]int, sigma)
	for _, c := range codes {
		base[c]++
	}
	sum := 0
	for c, f := range base {
		base[c] = sum
		sum += f
	}
	return base
}
