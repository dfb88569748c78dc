// Package qht implements a quotient hash table filter: a fixed-memory,
// probabilistic structure for approximate duplicate detection over streams.
//
// The filter stores a small fingerprint per element in a bit-packed table of
// buckets. Lookups have a bounded, tunable false positive rate and never
// report false negatives for elements whose fingerprint was stored and not
// evicted. Memory is allocated once at construction and never grows, making
// the filter suitable for dedup, sampling and traffic-analysis pipelines
// where exact membership sets are too large to keep.
//
// # Basic Usage
//
// Creating a filter and testing membership:
//
//	f, err := qht.New(1024, 8, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.Insert([]byte("alpha"))
//	seen := f.Lookup([]byte("alpha")) // true
//
// Deduplicating a stream:
//
//	for _, e := range stream {
//	    if f.TestAndInsertUint64(e) {
//	        continue // duplicate (or false positive)
//	    }
//	    process(e)
//	}
//
// # Geometry
//
// A filter is defined by three parameters, fixed at construction:
//
//   - bucketCount: number of addressable buckets
//   - slotsPerBucket: fingerprint slots per bucket; collisions on the bucket
//     index are tolerated up to this width
//   - fingerprintBits: bits kept per fingerprint; the false positive rate is
//     roughly 1-(1-2^-F)^S for a full bucket
//
// Total storage is exactly bucketCount*slotsPerBucket*fingerprintBits bits.
// NewWithMemory derives the bucket count from a bit budget instead.
//
// # Bucket Overflow
//
// When an element's bucket is full, Insert applies the configured eviction
// policy: EvictNone (default) drops the element and returns false,
// EvictRandom overwrites a random slot, EvictFIFO rotates out the oldest
// fingerprint. The evicting policies favor recent stream history and suit
// sliding-window dedup; see WithEviction.
//
// # Determinism
//
// Hashing is seeded per filter instance (WithSeed, fixed default). Two
// filters with identical parameters and seeds place every element
// identically, including eviction choices.
//
// # Thread Safety
//
// A Filter is NOT safe for concurrent use. Synchronize externally, or shard
// the stream across independent filters.
//
// # Package Structure
//
//   - Public API: filter.go (New, Insert, Lookup, TestAndInsert)
//   - Configuration: options.go (Option, With* functions)
//   - Hashing: hasher.go (algorithm dispatch), splitter.go (index/fingerprint split)
//   - Storage: internal/bitpack (fixed-width packed slots)
package qht
