package bwtsearch

import (
	"sort"

	"golang.org/x/exp/slices"
)

// buildLCP uses Kasai's algorithm: lcp[r] is the length of the longest common
// prefix of the suffixes at ranks r and r+1. Going through the text in order,
// each suffix shares at least h-1 symbols with its successor once its
// predecessor in the text shared h.
func buildLCP(sa []int, text []int) []int {
	n := len(sa)
	if n < 2 {
		return nil
	}
	inv := make([]int, n)
	for r, p := range sa {
		inv[p] = r
	}

	lcp := make([]int, n-1)
	h := 0
	for p := range n {
		r := inv[p]
		if r == n-1 {
			h = 0
			continue
		}
		q := sa[r+1]
		for p+h < n && q+h < n && text[p+h] == text[q+h] {
			h++
		}
		lcp[r] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

// Locate returns, in ascending order, every reference offset where query
// occurs. Unlike ExactMatch it binary searches the suffix array directly,
// so its cost depends on log(Len()) rather than on the alphabet.
func (ix *Index[S]) Locate(query []S) []int {
	codes, ok := ix.alpha.encode(query)
	if !ok {
		return []int{}
	}
	l, r, found := ix.boundaries(codes)
	if !found {
		return []int{}
	}
	matches := slices.Clone(ix.suffixArray[l : r+1])
	slices.Sort(matches)
	return matches
}

// boundaries returns the first and last rank whose suffix starts with pattern.
func (ix *Index[S]) boundaries(pattern []int) (int, int, bool) {
	text, sa, n := ix.text, ix.suffixArray, len(ix.suffixArray)

	// expand extends a known common prefix of length k between pattern and
	// the suffix at rank i, and reports whether pattern <= that suffix.
	expand := func(i, k int) (int, bool) {
		p := sa[i]
		for k < len(pattern) && p+k < n && pattern[k] == text[p+k] {
			k++
		}
		switch {
		case k == len(pattern):
			return k, true
		case p+k == n:
			return k, false
		default:
			return k, pattern[k] < text[p+k]
		}
	}

	// With the LCP array, best is the prefix of pattern matched by the suffix
	// at rank bestIdx, and only symbols past min(best, lcp) are compared.
	bestIdx, best := -1, 0
	l := sort.Search(n, func(i int) bool {
		if ix.lcp == nil {
			_, ok := expand(i, 0)
			return ok
		}
		if bestIdx != -1 && i != bestIdx {
			shared := ix.lcp[ix.lcpRMQ.Query(min(bestIdx, i), max(bestIdx, i)-1)]
			if shared < best {
				// i leaves the group sharing best symbols with pattern
				return i > bestIdx
			}
		} else {
			best = 0
		}
		k, ok := expand(i, best)
		bestIdx, best = i, k
		return ok
	})

	if l == n || !ix.hasPrefix(l, pattern) {
		return -1, -1, false
	}

	// [l, n) reads T T T F F F for "starts with pattern"; search the first F.
	r := sort.Search(n-l, func(i int) bool {
		if ix.lcp != nil {
			if i == 0 {
				return false
			}
			return ix.lcp[ix.lcpRMQ.Query(l, l+i-1)] < len(pattern)
		}
		return !ix.hasPrefix(l+i, pattern)
	})
	return l, l + r - 1, true
}

func (ix *Index[S]) hasPrefix(rank int, pattern []int) bool {
	suffix := ix.text[ix.suffixArray[rank]:]
	return len(suffix) >= len(pattern) && slices.Equal(suffix[:len(pattern)], pattern)
}

// LongestRepeat returns the offset and length of a longest substring of the
// reference occurring at least twice. Among the longest, the one found first
// in suffix order is reported, at the smaller of its two adjacent offsets.
// The length is 0 when no symbol repeats.
func (ix *Index[S]) LongestRepeat() (offset, length int) {
	lcp := ix.lcp
	if lcp == nil {
		lcp = buildLCP(ix.suffixArray, ix.text)
	}
	rank := -1
	for r, h := range lcp {
		if h > length {
			rank, length = r, h
		}
	}
	if rank == -1 {
		return 0, 0
	}
	return min(ix.suffixArray[rank], ix.suffixArray[rank+1]), length
}
