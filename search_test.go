package bwtsearch

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveInexactMatch scans every alignment of query against reference and
// counts substitutions.
func naiveInexactMatch(query, reference string, k int) []int {
	for _, c := range []byte(query) {
		if strings.IndexByte(reference, c) == -1 {
			return nil
		}
	}
	if query == "" {
		res := make([]int, len(reference)+1)
		for i := range res {
			res[i] = i
		}
		return res
	}
	var res []int
	for p := 0; p+len(query) <= len(reference); p++ {
		mismatches := 0
		for i := range len(query) {
			if query[i] != reference[p+i] {
				mismatches++
			}
		}
		if mismatches <= k {
			res = append(res, p)
		}
	}
	return res
}

func checkOffsets(t *testing.T, want, got []int) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func mustIndex(t *testing.T, reference string) *Index[byte] {
	t.Helper()
	ix, err := BuildIndex([]byte(reference), 0)
	require.NoError(t, err)
	return ix
}

func TestExactMatch(t *testing.T) {
	tests := []struct {
		query, reference string
		want             []int
	}{
		{"abc", "abcabcabc", []int{0, 3, 6}},
		{"gef", "abcabcabc", nil},
		{"ana", "banana", []int{1, 3}},
		{"banana", "banana", []int{0}},
		{"bananas", "banana", nil},
		{"aaa", "aaaaa", []int{0, 1, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.query+"/"+tc.reference, func(t *testing.T) {
			got, err := ExactMatch([]byte(tc.query), []byte(tc.reference), 0)
			require.NoError(t, err)
			checkOffsets(t, tc.want, got)
			checkOffsets(t, tc.want, mustIndex(t, tc.reference).ExactMatch([]byte(tc.query)))
		})
	}
}

func TestInexactMatch(t *testing.T) {
	tests := []struct {
		query, reference string
		k                int
		want             []int
	}{
		{"abc", "abcabd", 1, []int{0, 3}},
		{"abdd", "abcabd", 1, nil},
		{"abc", "abcabd", 0, []int{0}},
		{"xbc", "abcabd", 3, nil},
		{"zz", "abcabd", 2, nil},
		{"aaa", "abcabd", 2, []int{0, 1, 2, 3}},
		{"ab", "ab", 5, []int{0}},
	}
	for _, tc := range tests {
		t.Run(tc.query+"/"+tc.reference, func(t *testing.T) {
			got, err := InexactMatch([]byte(tc.query), []byte(tc.reference), 0, tc.k)
			require.NoError(t, err)
			checkOffsets(t, tc.want, got)
		})
	}
}

func TestEmptyQueryMatchesEverywhere(t *testing.T) {
	ix := mustIndex(t, "abcab")
	for k := range 3 {
		got, err := ix.InexactMatch(nil, k)
		require.NoError(t, err)
		checkOffsets(t, []int{0, 1, 2, 3, 4, 5}, got)
	}
}

func TestNegativeMismatches(t *testing.T) {
	ix := mustIndex(t, "abcab")
	_, err := ix.InexactMatch([]byte("ab"), -1)
	assert.ErrorIs(t, err, ErrNegativeMismatches)
	_, err = InexactMatch([]byte("ab"), []byte("abcab"), 0, -2)
	assert.ErrorIs(t, err, ErrNegativeMismatches)
	_, err = ix.InexactMatchAll([][]byte{[]byte("ab")}, -1)
	assert.ErrorIs(t, err, ErrNegativeMismatches)
}

func TestRawReferenceSentinelCollision(t *testing.T) {
	_, err := ExactMatch([]byte("a"), []byte("a\x00b"), 0)
	assert.ErrorIs(t, err, ErrSentinelInReference)
}

func TestCount(t *testing.T) {
	ix := mustIndex(t, "abcabcabc")
	assert.Equal(t, 3, ix.Count([]byte("abc")))
	assert.Equal(t, 2, ix.Count([]byte("cab")))
	assert.Equal(t, 0, ix.Count([]byte("cc")))
	assert.Equal(t, 0, ix.Count([]byte("x")))
	assert.Equal(t, 10, ix.Count(nil))
}

func TestSearchAgainstNaive(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for range 200 {
		reference := randomString(r, "acgt", 1+r.Intn(120))
		ix := mustIndex(t, reference)
		query := randomString(r, "acgtn", r.Intn(7))
		for k := range 3 {
			got, err := ix.InexactMatch([]byte(query), k)
			require.NoError(t, err)
			want := naiveInexactMatch(query, reference, k)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("InexactMatch(%q, %q, %d) mismatch (-want +got):\n%s", query, reference, k, diff)
			}
			assert.Equal(t, len(naiveInexactMatch(query, reference, 0)), ix.Count([]byte(query)))
		}
	}
}

func TestSearchProperties(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for range 100 {
		reference := randomString(r, "abc", 1+r.Intn(80))
		ix := mustIndex(t, reference)
		query := []byte(randomString(r, "abc", 1+r.Intn(5)))

		exact := ix.ExactMatch(query)
		zero, err := ix.InexactMatch(query, 0)
		require.NoError(t, err)
		checkOffsets(t, exact, zero)

		prev := zero
		for k := 1; k <= 3; k++ {
			cur, err := ix.InexactMatch(query, k)
			require.NoError(t, err)
			assert.Subset(t, cur, prev, "k=%d query %q reference %q", k, query, reference)
			prev = cur
		}
	}
}

func TestSingleSymbolQuery(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for range 50 {
		reference := randomString(r, "xyz", 1+r.Intn(60))
		ix := mustIndex(t, reference)
		for _, c := range []byte("xyz") {
			var want []int
			for i := range len(reference) {
				if reference[i] == c {
					want = append(want, i)
				}
			}
			checkOffsets(t, want, ix.ExactMatch([]byte{c}))
		}
	}
}

func TestOutOfAlphabetQuery(t *testing.T) {
	ix := mustIndex(t, "abcabd")
	for k := range 4 {
		got, err := ix.InexactMatch([]byte("abx"), k)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	// The sentinel is not part of the alphabet either.
	assert.Empty(t, ix.ExactMatch([]byte("d\x00")))
}

func TestInexactMatchAll(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	reference := randomString(r, "acgt", 500)
	ix := mustIndex(t, reference)

	queries := make([][]byte, 64)
	for i := range queries {
		start := r.Intn(len(reference) - 8)
		queries[i] = []byte(reference[start : start+8])
		queries[i][r.Intn(8)] = "acgt"[r.Intn(4)]
	}

	got, err := ix.InexactMatchAll(queries, 1)
	require.NoError(t, err)
	require.Len(t, got, len(queries))
	for i, q := range queries {
		want, err := ix.InexactMatch(q, 1)
		require.NoError(t, err)
		checkOffsets(t, want, got[i])
	}

	none, err := ix.InexactMatchAll(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func FuzzInexactMatch(f *testing.F) {
	f.Add("abcabd", "abc", uint8(1))
	f.Add("banana", "ana", uint8(0))
	f.Fuzz(func(t *testing.T, reference, query string, kk uint8) {
		if len(reference) > 200 || len(query) > 8 || strings.IndexByte(reference, 0) != -1 {
			return
		}
		k := int(kk % 3)
		ix, err := BuildIndex([]byte(reference), 0)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ix.InexactMatch([]byte(query), k)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(naiveInexactMatch(query, reference, k), got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}
