package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/viniciusth/bwtsearch"
)

type variant struct {
	name   string
	config func(*bwtsearch.IndexBuilder[byte]) *bwtsearch.IndexBuilder[byte]
}

var variants = map[string]variant{
	"full":   {name: "full", config: func(b *bwtsearch.IndexBuilder[byte]) *bwtsearch.IndexBuilder[byte] { return b }},
	"no_lcp": {name: "no_lcp", config: func(b *bwtsearch.IndexBuilder[byte]) *bwtsearch.IndexBuilder[byte] { return b.SkipLCP() }},
}

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(reference []byte, config func(*bwtsearch.IndexBuilder[byte]) *bwtsearch.IndexBuilder[byte]) (time.Duration, uint64, uint64, *bwtsearch.Index[byte]) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	ix, err := config(bwtsearch.NewBuilder(reference, 0)).Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, ix
}

func measure(queries [][]byte, search func([]byte)) time.Duration {
	start := time.Now()
	for _, q := range queries {
		search(q)
	}
	return time.Since(start)
}

func randomSequence(r *rand.Rand, alphabet string, n int) []byte {
	seq := make([]byte, n)
	for i := range seq {
		seq[i] = alphabet[r.Intn(len(alphabet))]
	}
	return seq
}

// mutate substitutes up to k random positions of query.
func mutate(r *rand.Rand, alphabet string, query []byte, k int) []byte {
	q := append([]byte(nil), query...)
	for range k {
		q[r.Intn(len(q))] = alphabet[r.Intn(len(alphabet))]
	}
	return q
}

func runBenchmark(v variant, alphabet string, N, M, K, Q, runs int) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		reference := randomSequence(r, alphabet, N)
		bt, bp, ba, ix := measureBuild(reference, v.config)

		queries := make([][]byte, Q)
		for i := range queries {
			start := r.Intn(N - M + 1)
			queries[i] = mutate(r, alphabet, reference[start:start+M], K)
		}

		et := measure(queries, func(q []byte) { _ = ix.ExactMatch(q) })
		it := measure(queries, func(q []byte) {
			if _, err := ix.InexactMatch(q, K); err != nil {
				panic(err)
			}
		})
		lt := measure(queries, func(q []byte) { _ = ix.Locate(q) })
		fmt.Printf("%s,%d,%d,%d,%d,%.0f,%d,%d,%.0f,%.0f,%.0f\n",
			v.name, N, M, K, Q,
			float64(bt.Nanoseconds()), bp, ba,
			float64(et.Nanoseconds()), float64(it.Nanoseconds()), float64(lt.Nanoseconds()))
	}
}

func main() {
	variantName := flag.String("variant", "", "Variant to benchmark")
	n := flag.Int("n", 0, "Reference length N")
	m := flag.Int("m", 0, "Query length M")
	k := flag.Int("k", 0, "Maximum mismatches K")
	q := flag.Int("q", 0, "Number of queries Q")
	alphabet := flag.String("alphabet", "ACGT", "Symbols of the random reference")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *variantName == "" || *n <= 0 || *m <= 0 || *k < 0 || *q <= 0 || *m > *n || *alphabet == "" {
		fmt.Println("Usage: go run main.go -variant=<variant> -n=<N> -m=<M> -k=<K> -q=<Q> [-alphabet=<symbols>] [-runs=<runs>]")
		fmt.Println("Available variants:", variants)
		os.Exit(1)
	}

	v, ok := variants[*variantName]
	if !ok {
		fmt.Println("Invalid variant:", *variantName)
		os.Exit(1)
	}

	runBenchmark(v, *alphabet, *n, *m, *k, *q, *runs)
}
