package bwtsearch

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// BuildSuffixArray returns the permutation of [0, len(text)) that orders the
// suffixes of text ascending. A suffix that is a proper prefix of another
// sorts first.
func BuildSuffixArray[S constraints.Ordered](text []S) []int {
	symbols := distinct(slices.Clone(text))
	codes := make([]int, len(text))
	for i, s := range text {
		codes[i], _ = slices.BinarySearch(symbols, s)
	}
	return sortSuffixes(codes, len(symbols))
}

// sortSuffixes computes the suffix array of codes, whose values must lie in
// [0, sigma). It uses prefix doubling: round k orders the suffixes by their
// first 2k symbols with two stable counting sorts, the second key being the
// rank of the suffix k positions further on.
func sortSuffixes(codes []int, sigma int) []int {
	n := len(codes)
	sa := make([]int, n)
	if n == 0 {
		return sa
	}

	rank := slices.Clone(codes)
	next := make([]int, n)
	tmp := make([]int, n)
	for i := range tmp {
		tmp[i] = i
	}
	buckets := make([]int, max(sigma, n)+1)

	// byKey stably distributes src into dst by key.
	byKey := func(dst, src []int, key func(int) int) {
		clear(buckets)
		for _, i := range src {
			buckets[key(i)]++
		}
		sum := 0
		for c, f := range buckets {
			buckets[c] = sum
			sum += f
		}
		for _, i := range src {
			k := key(i)
			dst[buckets[k]] = i
			buckets[k]++
		}
	}

	for k := 1; ; k <<= 1 {
		// Suffixes that end before i+k sort before any that continue.
		second := func(i int) int {
			if i+k < n {
				return rank[i+k] + 1
			}
			return 0
		}
		first := func(i int) int { return rank[i] }

		byKey(sa, tmp, second)
		byKey(tmp, sa, first)
		sa, tmp = tmp, sa

		classes := 1
		next[sa[0]] = 0
		for j := 1; j < n; j++ {
			a, b := sa[j-1], sa[j]
			if rank[a] != rank[b] || second(a) != second(b) {
				classes++
			}
			next[b] = classes - 1
		}
		rank, next = next, rank

		if classes == n || k >= n {
			return sa
		}
	}
}
