package bwtsearch

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ErrMalformedBWT = errors.New("bwtsearch: transform must contain the sentinel exactly once")
)

// BWT returns the Burrows-Wheeler transform of text: the last column of the
// sorted matrix of its rotations. Rotation order equals suffix order only
// when text ends with a unique symbol smaller than all others, such as "\x00".
func BWT[S constraints.Ordered](text []S) []S {
	return bwtFromSuffixArray(text, BuildSuffixArray(text))
}

// bwtFromSuffixArray takes, for every suffix in order, the symbol preceding it.
// The suffix starting at 0 wraps around to the last symbol.
func bwtFromSuffixArray[S any](text []S, sa []int) []S {
	n := len(text)
	bwt := make([]S, n)
	for i, p := range sa {
		bwt[i] = text[(p+n-1)%n]
	}
	return bwt
}

// InverseBWT reconstructs the sentinel-terminated text a transform was built
// from. The sentinel is ordered before every other symbol.
func InverseBWT[S constraints.Ordered](bwt []S, sentinel S) ([]S, error) {
	row := -1
	for i, s := range bwt {
		if s != sentinel {
			continue
		}
		if row != -1 {
			return nil, fmt.Errorf("%w: found at %d and %d", ErrMalformedBWT, row, i)
		}
		row = i
	}
	if row == -1 {
		return nil, ErrMalformedBWT
	}

	alpha := newAlphabet(bwt, sentinel)
	codes := make([]int, len(bwt))
	for i, s := range bwt {
		codes[i], _ = alpha.code(s)
	}
	return alpha.decode(invertCodes(codes, alpha.size()+1)), nil
}

// invertCodes walks the LF mapping backwards from row 0, the rotation that
// starts with the sentinel. Codes must lie in [0, sigma) with code 0 occurring once.
func invertCodes(last []int, sigma int) []int {
	n := len(last)
	first := make([]int, sigma)
	for _, c := range last {
		first[c]++
	}
	sum := 0
	for c, f := range first {
		first[c] = sum
		sum += f
	}

	seen := make([]int, sigma)
	lf := make([]int, n)
	for i, c := range last {
		lf[i] = first[c] + seen[c]
		seen[c]++
	}

	text := make([]int, n)
	text[n-1] = sentinelCode
	row := 0
	for j := n - 2; j >= 0; j-- {
		text[j] = last[row]
		row = lf[row]
	}
	return text
}
