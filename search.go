package bwtsearch

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// partial is an unresolved branch of a search: the query symbols still to be
// matched (consumed from the end), the suffix-array interval consistent with
// what has been matched so far, and the mismatches left to spend.
type partial struct {
	query      []int
	begin, end int
	mismatches int
}

// InexactMatch returns, in ascending order, every reference offset where
// query occurs with at most maxMismatches substituted symbols. A query using
// a symbol absent from the reference has no matches. The empty query
// matches at every offset, the sentinel position included.
func (ix *Index[S]) InexactMatch(query []S, maxMismatches int) ([]int, error) {
	if maxMismatches < 0 {
		return nil, ErrNegativeMismatches
	}
	codes, ok := ix.alpha.encode(query)
	if !ok {
		return []int{}, nil
	}
	return ix.search(codes, maxMismatches), nil
}

// ExactMatch returns, in ascending order, every reference offset where query occurs.
func (ix *Index[S]) ExactMatch(query []S) []int {
	matches, _ := ix.InexactMatch(query, 0)
	return matches
}

// Count returns the number of exact occurrences of query.
func (ix *Index[S]) Count(query []S) int {
	codes, ok := ix.alpha.encode(query)
	if !ok {
		return 0
	}
	begin, end := 0, len(ix.text)-1
	for i := len(codes) - 1; i >= 0 && begin <= end; i-- {
		begin, end = ix.step(codes[i], begin, end)
	}
	return max(0, end-begin+1)
}

func (ix *Index[S]) search(query []int, maxMismatches int) []int {
	var matches []int
	stack := []partial{{query: query, begin: 0, end: len(ix.text) - 1, mismatches: maxMismatches}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(p.query) == 0 {
			if p.begin <= p.end {
				matches = append(matches, ix.suffixArray[p.begin:p.end+1]...)
			}
			continue
		}

		last := len(p.query) - 1
		want, rest := p.query[last], p.query[:last]
		for _, code := range ix.candidates(want, p.mismatches) {
			mismatches := p.mismatches
			if code != want {
				mismatches = max(0, mismatches-1)
			}
			begin, end := ix.step(code, p.begin, p.end)
			if begin <= end {
				stack = append(stack, partial{query: rest, begin: begin, end: end, mismatches: mismatches})
			}
		}
	}

	slices.Sort(matches)
	return slices.Compact(matches)
}

// candidates lists the codes a branch may extend with: only the wanted one
// once the budget is spent, otherwise the whole alphabet.
func (ix *Index[S]) candidates(want, mismatches int) []int {
	if mismatches == 0 {
		return []int{want}
	}
	return ix.codes
}

// step maps the interval [begin, end] of suffixes starting with some string w
// to the interval of suffixes starting with code followed by w.
func (ix *Index[S]) step(code, begin, end int) (int, int) {
	base := ix.base[code]
	return base + ix.occ.resolve(code, begin-1) + 1, base + ix.occ.resolve(code, end)
}

// InexactMatchAll runs InexactMatch for every query concurrently. The result
// for queries[i] is stored at index i.
func (ix *Index[S]) InexactMatchAll(queries [][]S, maxMismatches int) ([][]int, error) {
	if maxMismatches < 0 {
		return nil, ErrNegativeMismatches
	}

	results := make([][]int, len(queries))
	next := make(chan int)
	var wg sync.WaitGroup
	for range min(runtime.GOMAXPROCS(0), len(queries)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				results[i], _ = ix.InexactMatch(queries[i], maxMismatches)
			}
		}()
	}
	for i := range queries {
		next <- i
	}
	close(next)
	wg.Wait()
	return results, nil
}

// ExactMatch builds an index over reference and returns the offsets of query in it.
func ExactMatch[S constraints.Ordered](query, reference []S, sentinel S) ([]int, error) {
	return InexactMatch(query, reference, sentinel, 0)
}

// InexactMatch builds an index over reference and returns the offsets where
// query occurs with at most maxMismatches substitutions. Callers searching the
// same reference repeatedly should build the index once with BuildIndex.
func InexactMatch[S constraints.Ordered](query, reference []S, sentinel S, maxMismatches int) ([]int, error) {
	if maxMismatches < 0 {
		return nil, ErrNegativeMismatches
	}
	ix, err := NewBuilder(reference, sentinel).SkipLCP().Build()
	if err != nil {
		return nil, err
	}
	return ix.InexactMatch(query, maxMismatches)
}
