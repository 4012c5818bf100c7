package bwtsearch

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// naiveSuffixArray sorts the suffixes themselves.
func naiveSuffixArray(s string) []int {
	sa := make([]int, len(s))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool { return s[sa[i]:] < s[sa[j]:] })
	return sa
}

func randomString(r *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func TestBuildSuffixArrayBanana(t *testing.T) {
	got := BuildSuffixArray([]byte("banana\x00"))
	if diff := cmp.Diff([]int{6, 5, 3, 1, 0, 4, 2}, got); diff != "" {
		t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSuffixArrayNoTerminator(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"", []int{}},
		{"a", []int{0}},
		{"aaaa", []int{3, 2, 1, 0}},
		{"banana", []int{5, 3, 1, 0, 4, 2}},
		{"mississippi", []int{10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			got := BuildSuffixArray([]byte(tc.text))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildSuffixArrayRunes(t *testing.T) {
	text := "a\u00f1oa\u00f1o"
	got := BuildSuffixArray([]rune(text))
	want := naiveSuffixArrayRunes([]rune(text))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
	}
}

func naiveSuffixArrayRunes(s []rune) []int {
	sa := make([]int, len(s))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool { return string(s[sa[i]:]) < string(s[sa[j]:]) })
	return sa
}

func TestBuildSuffixArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, alphabet := range []string{"a", "ab", "ACGT", "abcdefghijklmnopqrstuvwxyz"} {
		for range 50 {
			s := randomString(r, alphabet, r.Intn(200))
			got := BuildSuffixArray([]byte(s))
			if diff := cmp.Diff(naiveSuffixArray(s), got); diff != "" {
				t.Fatalf("suffix array of %q mismatch (-want +got):\n%s", s, diff)
			}
		}
	}
}

func FuzzBuildSuffixArray(f *testing.F) {
	f.Add([]byte("banana"))
	f.Add([]byte("abracadabra\x00"))
	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 500 {
			return
		}
		got := BuildSuffixArray(data)
		if diff := cmp.Diff(naiveSuffixArray(string(data)), got); diff != "" {
			t.Errorf("suffix array mismatch (-want +got):\n%s", diff)
		}
	})
}
