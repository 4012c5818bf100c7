package bwtsearch

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/segmentio/asm/ascii"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidUTF8 = errors.New("bwtsearch: invalid UTF-8 encoding in text")
)

const (
	// DefaultSentinel terminates text references unless WithSentinel says
	// otherwise. NUL rarely occurs in text and sorts before every other rune.
	DefaultSentinel = '\x00'
)

type TextBuilder struct {
	reference     string
	sentinel      rune
	caseSensitive bool
	normalize     bool
	useLCP        bool
}

func NewTextBuilder(reference string) *TextBuilder {
	return &TextBuilder{
		reference:     reference,
		sentinel:      DefaultSentinel,
		caseSensitive: true,
		normalize:     false,
		useLCP:        true,
	}
}

// Lower-cases the reference and every query.
func (b *TextBuilder) CaseInsensitive() *TextBuilder {
	b.caseSensitive = false
	return b
}

// Normalizes the reference and every query with NFC, so that precomposed and
// decomposed forms of the same character match.
func (b *TextBuilder) Normalize() *TextBuilder {
	b.normalize = true
	return b
}

func (b *TextBuilder) WithSentinel(sentinel rune) *TextBuilder {
	b.sentinel = sentinel
	return b
}

// Skips the LCP array construction, see IndexBuilder.SkipLCP.
func (b *TextBuilder) SkipLCP() *TextBuilder {
	b.useLCP = false
	return b
}

// Build indexes the transformed reference. ASCII references with an ASCII
// sentinel are indexed byte by byte, anything else rune by rune; offsets are
// in symbols either way.
func (b *TextBuilder) Build() (*TextIndex, error) {
	if !utf8.ValidString(b.reference) {
		return nil, ErrInvalidUTF8
	}
	reference := applyTransforms(b.reference, b.caseSensitive, b.normalize)
	t := &TextIndex{caseSensitive: b.caseSensitive, normalize: b.normalize}

	var err error
	if ascii.ValidString(reference) && ascii.ValidRune(b.sentinel) {
		builder := NewBuilder([]byte(reference), byte(b.sentinel))
		if !b.useLCP {
			builder.SkipLCP()
		}
		t.bytes, err = builder.Build()
	} else {
		builder := NewBuilder([]rune(reference), b.sentinel)
		if !b.useLCP {
			builder.SkipLCP()
		}
		t.runes, err = builder.Build()
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func applyTransforms(text string, caseSensitive bool, normalize bool) string {
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	if normalize {
		text = norm.NFC.String(text)
	}
	return text
}

// TextIndex is an Index over a string. Exactly one of bytes and runes is set.
type TextIndex struct {
	bytes         *Index[byte]
	runes         *Index[rune]
	caseSensitive bool
	normalize     bool
}

// Len is the number of symbols in the transformed reference, sentinel included.
func (t *TextIndex) Len() int {
	if t.bytes != nil {
		return t.bytes.Len()
	}
	return t.runes.Len()
}

func (t *TextIndex) ExactMatch(query string) []int {
	matches, _ := t.InexactMatch(query, 0)
	return matches
}

// InexactMatch returns the symbol offsets where query occurs with at most
// maxMismatches substitutions. Invalid UTF-8 in query never matches.
func (t *TextIndex) InexactMatch(query string, maxMismatches int) ([]int, error) {
	if maxMismatches < 0 {
		return nil, ErrNegativeMismatches
	}
	if !utf8.ValidString(query) {
		return []int{}, nil
	}
	query = applyTransforms(query, t.caseSensitive, t.normalize)
	if t.bytes != nil {
		if !ascii.ValidString(query) {
			return []int{}, nil
		}
		return t.bytes.InexactMatch([]byte(query), maxMismatches)
	}
	return t.runes.InexactMatch([]rune(query), maxMismatches)
}

// Locate is the suffix-array binary search counterpart of ExactMatch.
func (t *TextIndex) Locate(query string) []int {
	if !utf8.ValidString(query) {
		return []int{}
	}
	query = applyTransforms(query, t.caseSensitive, t.normalize)
	if t.bytes != nil {
		if !ascii.ValidString(query) {
			return []int{}
		}
		return t.bytes.Locate([]byte(query))
	}
	return t.runes.Locate([]rune(query))
}

// ExactMatchString returns the offsets of query in reference, terminated by DefaultSentinel.
func ExactMatchString(query, reference string) ([]int, error) {
	return InexactMatchString(query, reference, 0)
}

// InexactMatchString returns the offsets where query occurs in reference with
// at most maxMismatches substitutions. The index is built for this call only.
func InexactMatchString(query, reference string, maxMismatches int) ([]int, error) {
	if maxMismatches < 0 {
		return nil, ErrNegativeMismatches
	}
	t, err := NewTextBuilder(reference).SkipLCP().Build()
	if err != nil {
		return nil, err
	}
	return t.InexactMatch(query, maxMismatches)
}
