// Bench is a workload tool for measuring qht filter throughput, streaming
// dedup behavior, and empirical false positive rates.
//
// Usage:
//
//	go run ./cmd/bench -elements 10000000 -universe 1000000 -slots 8 -fpbits 8
//
// Flags:
//
//	-elements  Number of synthetic stream elements (default: 10,000,000)
//	-universe  Distinct values the synthetic stream draws from (default: 1,000,000)
//	-buckets   Bucket count per shard (default: 1<<20)
//	-slots     Slots per bucket (default: 8)
//	-fpbits    Fingerprint bits (default: 8)
//	-algo      Hash algorithm: xxh3, xxhash or murmur3 (default: xxh3)
//	-eviction  Bucket overflow policy: none, random or fifo (default: none)
//	-shards    Independent filter shards, one worker each (default: 1)
//	-input     Newline-delimited key corpus; replaces the synthetic stream
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"

	"github.com/tamirms/qht"
)

// benchSeed derives per-shard stream generators. Unrelated to the filter's
// hash seed.
const benchSeed = 0xbe4c45eed5eed5ee

func main() {
	elementsFlag := flag.Int("elements", 10_000_000, "number of synthetic stream elements")
	universeFlag := flag.Uint64("universe", 1_000_000, "distinct element universe for the synthetic stream")
	bucketsFlag := flag.Uint64("buckets", 1<<20, "bucket count per shard")
	slotsFlag := flag.Int("slots", 8, "slots per bucket")
	fpBitsFlag := flag.Int("fpbits", 8, "fingerprint bits")
	algoFlag := flag.String("algo", "xxh3", "hash algorithm: xxh3, xxhash or murmur3")
	evictionFlag := flag.String("eviction", "none", "bucket overflow policy: none, random or fifo")
	shardsFlag := flag.Int("shards", 1, "independent filter shards (one worker per shard)")
	probesFlag := flag.Int("probes", 100_000, "never-inserted lookups for the FP measurement")
	inputFlag := flag.String("input", "", "newline-delimited key corpus (replaces the synthetic stream)")
	seedFlag := flag.Uint64("seed", 0, "filter hash seed (0 = library default)")
	flag.Parse()

	var algo qht.HashAlgorithmID
	switch *algoFlag {
	case "xxh3":
		algo = qht.AlgoXXH3
	case "xxhash":
		algo = qht.AlgoXXHash
	case "murmur3":
		algo = qht.AlgoMurmur3
	default:
		fmt.Printf("Unknown algorithm: %s (use 'xxh3', 'xxhash' or 'murmur3')\n", *algoFlag)
		os.Exit(1)
	}

	var policy qht.EvictionPolicy
	switch *evictionFlag {
	case "none":
		policy = qht.EvictNone
	case "random":
		policy = qht.EvictRandom
	case "fifo":
		policy = qht.EvictFIFO
	default:
		fmt.Printf("Unknown eviction policy: %s (use 'none', 'random' or 'fifo')\n", *evictionFlag)
		os.Exit(1)
	}

	opts := []qht.Option{
		qht.WithHashAlgorithm(algo),
		qht.WithEviction(policy),
	}
	if *seedFlag != 0 {
		opts = append(opts, qht.WithSeed(*seedFlag))
	}

	shards := *shardsFlag
	if shards < 1 {
		shards = 1
	}
	filters := make([]*qht.Filter, shards)
	for i := range filters {
		f, err := qht.New(*bucketsFlag, *slotsFlag, *fpBitsFlag, opts...)
		if err != nil {
			fmt.Printf("New failed: %v\n", err)
			os.Exit(1)
		}
		filters[i] = f
	}

	var corpus [][]byte
	var mm mmap.MMap
	if *inputFlag != "" {
		f, err := os.Open(*inputFlag)
		if err != nil {
			fmt.Printf("Open corpus failed: %v\n", err)
			os.Exit(1)
		}
		mm, err = mmap.Map(f, mmap.RDONLY, 0)
		_ = f.Close() // per POSIX mmap(2), f is not needed after mapping
		if err != nil {
			fmt.Printf("mmap corpus failed: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = mm.Unmap() }()
		adviseSequential(mm)
		corpus = splitLines(mm)
		fmt.Printf("Corpus: %d keys from %s\n", len(corpus), *inputFlag)
	}

	total := *elementsFlag
	if corpus != nil {
		total = len(corpus)
	}
	universe := *universeFlag
	if universe == 0 {
		universe = 1
	}

	fmt.Println("Running workload...")
	dups := make([]uint64, shards)
	var g errgroup.Group
	start := time.Now()
	for s := 0; s < shards; s++ {
		g.Go(func() error {
			f := filters[s]
			lo, hi := chunk(total, shards, s)
			var d uint64
			if corpus != nil {
				for _, key := range corpus[lo:hi] {
					if f.TestAndInsert(key) {
						d++
					}
				}
			} else {
				rng := rand.New(rand.NewPCG(benchSeed, benchSeed+uint64(s)))
				for i := lo; i < hi; i++ {
					if f.TestAndInsertUint64(rng.Uint64N(universe)) {
						d++
					}
				}
			}
			dups[s] = d
			return nil
		})
	}
	_ = g.Wait() // workers only report counts
	elapsed := time.Since(start)

	var totalDups uint64
	for _, d := range dups {
		totalDups += d
	}

	// Probe elements that were never part of the stream: synthetic streams
	// draw from [0, universe), corpora get keys no corpus line can equal.
	falsePos := 0
	for i := 0; i < *probesFlag; i++ {
		f := filters[i%shards]
		if corpus != nil {
			if f.LookupString(fmt.Sprintf("\x00bench-probe-%d", i)) {
				falsePos++
			}
		} else {
			if f.LookupUint64(universe + uint64(i)) {
				falsePos++
			}
		}
	}

	var fill float64
	for _, f := range filters {
		fill += f.FillRatio()
	}
	fill /= float64(shards)

	fmt.Printf("\n")
	fmt.Printf("Filter:      buckets=%d slots=%d fpbits=%d algo=%s eviction=%s shards=%d\n",
		*bucketsFlag, *slotsFlag, *fpBitsFlag, algo, policy, shards)
	fmt.Printf("Stream:      %d elements in %.2f sec (%.2f M ops/sec)\n",
		total, elapsed.Seconds(), float64(total)/elapsed.Seconds()/1_000_000)
	fmt.Printf("Duplicates:  %d detected (%.2f%% of stream)\n",
		totalDups, 100*float64(totalDups)/float64(total))
	fmt.Printf("Fill ratio:  %.4f\n", fill)
	fmt.Printf("FP rate:     %.4f%% measured, %.4f%% full-bucket bound\n",
		100*float64(falsePos)/float64(*probesFlag),
		100*qht.EstimateFalsePositiveRate(*fpBitsFlag, *slotsFlag))
}

// chunk splits total items into parts contiguous ranges; the last range
// absorbs the remainder.
func chunk(total, parts, i int) (lo, hi int) {
	per := total / parts
	lo = i * per
	hi = lo + per
	if i == parts-1 {
		hi = total
	}
	return lo, hi
}

// splitLines slices data into its newline-delimited lines without copying.
// Empty lines are skipped.
func splitLines(data []byte) [][]byte {
	lines := make([][]byte, 0, 1024)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		if i > 0 {
			lines = append(lines, data[:i])
		}
		data = data[i+1:]
	}
	return lines
}
