package bwtsearch

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// sentinelCode is the code of the sentinel. It is smaller than every
// alphabet code, whatever the natural value of the sentinel symbol.
const sentinelCode = 0

// alphabet maps symbols to dense codes 1..size in ascending order.
type alphabet[S constraints.Ordered] struct {
	symbols  []S
	sentinel S
}

// newAlphabet collects the distinct symbols of text, skipping the sentinel.
func newAlphabet[S constraints.Ordered](text []S, sentinel S) alphabet[S] {
	symbols := make([]S, 0, len(text))
	for _, s := range text {
		if s != sentinel {
			symbols = append(symbols, s)
		}
	}
	return alphabet[S]{symbols: distinct(symbols), sentinel: sentinel}
}

// distinct sorts symbols in place and drops duplicates.
func distinct[S constraints.Ordered](symbols []S) []S {
	slices.Sort(symbols)
	return slices.Compact(symbols)
}

func (a alphabet[S]) size() int {
	return len(a.symbols)
}

func (a alphabet[S]) code(s S) (int, bool) {
	if s == a.sentinel {
		return sentinelCode, true
	}
	i, ok := slices.BinarySearch(a.symbols, s)
	return i + 1, ok
}

func (a alphabet[S]) symbol(code int) S {
	if code == sentinelCode {
		return a.sentinel
	}
	return a.symbols[code-1]
}

// encode maps every symbol of text to its code. It reports false if some
// symbol is outside the alphabet. The sentinel is not accepted.
func (a alphabet[S]) encode(text []S) ([]int, bool) {
	codes := make([]int, len(text))
	for i, s := range text {
		c, ok := a.code(s)
		if !ok || c == sentinelCode {
			return nil, false
		}
		codes[i] = c
	}
	return codes, true
}

func (a alphabet[S]) decode(codes []int) []S {
	text := make([]S, len(codes))
	for i, c := range codes {
		text[i] = a.symbol(c)
	}
	return text
}
