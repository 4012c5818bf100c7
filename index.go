package bwtsearch

import (
	"errors"
	"fmt"

	"github.com/viniciusth/rmq"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

var (
	ErrSentinelInReference = errors.New("bwtsearch: sentinel symbol occurs in the reference")
	ErrNegativeMismatches  = errors.New("bwtsearch: mismatch budget must not be negative")
)

type IndexBuilder[S constraints.Ordered] struct {
	reference []S
	sentinel  S
	useLCP    bool
}

// NewBuilder prepares an index over reference. The sentinel terminates the
// reference and must not occur in it.
func NewBuilder[S constraints.Ordered](reference []S, sentinel S) *IndexBuilder[S] {
	return &IndexBuilder[S]{
		reference: reference,
		sentinel:  sentinel,
		useLCP:    true,
	}
}

// Skips the LCP array construction used by Locate, whose binary search then
// compares the query from its first symbol at every probe.
// Saves O(|reference|) memory for the LCP array and its RMQ.
func (b *IndexBuilder[S]) SkipLCP() *IndexBuilder[S] {
	b.useLCP = false
	return b
}

func (b *IndexBuilder[S]) Build() (*Index[S], error) {
	if i := slices.Index(b.reference, b.sentinel); i != -1 {
		return nil, fmt.Errorf("%w: at offset %d", ErrSentinelInReference, i)
	}

	alpha := newAlphabet(b.reference, b.sentinel)
	refCodes, _ := alpha.encode(b.reference)
	text := append(refCodes, sentinelCode)
	sigma := alpha.size() + 1

	suffixArray := sortSuffixes(text, sigma)
	bwt := bwtFromSuffixArray(text, suffixArray)

	// The sentinel is excluded from the base counts; its single row comes
	// first and is accounted for by the +1 of the interval update.
	base := baseCounts(refCodes, sigma)

	var lcp []int
	var lcpRMQ *rmq.RMQHybridNaive[int]
	if b.useLCP && len(text) > 1 {
		lcp = buildLCP(suffixArray, text)
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}

	return &Index[S]{
		alpha:       alpha,
		text:        text,
		bwt:         alpha.decode(bwt),
		occ:         buildRankTable(bwt, sigma),
		base:        base,
		suffixArray: suffixArray,
		lcp:         lcp,
		lcpRMQ:      lcpRMQ,
		codes:       allCodes(alpha.size()),
	}, nil
}

// BuildIndex builds an index over reference with the LCP array included.
func BuildIndex[S constraints.Ordered](reference []S, sentinel S) (*Index[S], error) {
	return NewBuilder(reference, sentinel).Build()
}

// Index is an FM index over a sentinel-terminated reference. It is never
// modified after Build and may be searched from any number of goroutines.
type Index[S constraints.Ordered] struct {
	alpha       alphabet[S]
	text        []int // reference codes followed by the sentinel code
	bwt         []S
	occ         rankTable
	base        []int
	suffixArray []int
	lcp         []int
	lcpRMQ      *rmq.RMQHybridNaive[int]
	codes       []int // every alphabet code, the branches of a mismatch
}

func allCodes(size int) []int {
	codes := make([]int, size)
	for i := range codes {
		codes[i] = i + 1
	}
	return codes
}

// Len is the length of the sentinel-terminated reference.
func (ix *Index[S]) Len() int {
	return len(ix.text)
}

func (ix *Index[S]) Sentinel() S {
	return ix.alpha.sentinel
}

// Alphabet returns the distinct reference symbols in ascending order.
func (ix *Index[S]) Alphabet() []S {
	return slices.Clone(ix.alpha.symbols)
}

func (ix *Index[S]) BWT() []S {
	return slices.Clone(ix.bwt)
}

func (ix *Index[S]) SuffixArray() []int {
	return slices.Clone(ix.suffixArray)
}

// Rank returns the number of occurrences of symbol in BWT()[0..i]. It accepts
// i == -1 and i == Len(). Symbols outside the index occur zero times.
func (ix *Index[S]) Rank(symbol S, i int) int {
	c, ok := ix.alpha.code(symbol)
	if !ok {
		return 0
	}
	return ix.occ.resolve(c, i)
}

// BaseCount returns the number of reference symbols smaller than symbol.
// It reports false for symbols outside the alphabet.
func (ix *Index[S]) BaseCount(symbol S) (int, bool) {
	c, ok := ix.alpha.code(symbol)
	if !ok || c == sentinelCode {
		return 0, false
	}
	return ix.base[c], true
}

// Reconstruct inverts the transform, returning the reference followed by the sentinel.
func (ix *Index[S]) Reconstruct() []S {
	bwt := make([]int, len(ix.bwt))
	for i, s := range ix.bwt {
		bwt[i], _ = ix.alpha.code(s)
	}
	return ix.alpha.decode(invertCodes(bwt, ix.alpha.size()+1))
}
