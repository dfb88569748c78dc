package qht

import (
	"fmt"
	"math/rand/v2"

	qhterrors "github.com/tamirms/qht/errors"
	"github.com/tamirms/qht/internal/bitpack"
)

// Filter is a quotient hash table filter: a fixed-memory, probabilistic
// structure answering "have I seen this element before?" over a stream.
//
// The filter owns bucketCount buckets of slotsPerBucket fingerprint slots
// each, packed contiguously at fingerprintBits per slot. Lookups never
// report false negatives for elements whose fingerprint was stored and not
// evicted; false positives occur when two elements share both bucket and
// fingerprint, with probability bounded by roughly 1-(1-2^-F)^S.
//
// The all-zero fingerprint value is reserved to mean "empty slot"; element
// fingerprints are remapped onto [1, 2^F-1], which reweights the false
// positive rate by at most 1/(2^F-1).
//
// A Filter is NOT safe for concurrent use. Callers needing concurrency must
// synchronize externally or shard across independent filters.
type Filter struct {
	slots  *bitpack.Vector
	split  splitter
	rng    *rand.Rand // slot choice for EvictRandom, nil otherwise

	buckets uint64
	width   int
	fpBits  int
	policy  EvictionPolicy
	seed    uint64
	count   uint64
}

// New creates a filter with bucketCount buckets of slotsPerBucket slots,
// each fingerprintBits wide. All three must be positive; fingerprintBits
// cannot exceed 64. Storage is allocated once and never grows.
func New(bucketCount uint64, slotsPerBucket, fingerprintBits int, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if bucketCount == 0 {
		return nil, qhterrors.ErrZeroBucketCount
	}
	if slotsPerBucket <= 0 {
		return nil, qhterrors.ErrZeroSlots
	}
	if fingerprintBits <= 0 {
		return nil, qhterrors.ErrZeroFingerprint
	}
	if fingerprintBits > 64 {
		return nil, fmt.Errorf("%w: %d", qhterrors.ErrFingerprintTooWide, fingerprintBits)
	}
	switch cfg.eviction {
	case EvictNone, EvictRandom, EvictFIFO:
	default:
		return nil, fmt.Errorf("%w: %d", qhterrors.ErrUnknownEviction, cfg.eviction)
	}

	h, err := newHasher(cfg.algo)
	if err != nil {
		return nil, err
	}

	slots := bitpack.New(bucketCount*uint64(slotsPerBucket), uint(fingerprintBits))
	f := &Filter{
		slots: slots,
		split: splitter{
			h:       h,
			seed:    cfg.seed,
			buckets: bucketCount,
			fpMask:  fingerprintMask(fingerprintBits),
		},
		buckets: bucketCount,
		width:   slotsPerBucket,
		fpBits:  fingerprintBits,
		policy:  cfg.eviction,
		seed:    cfg.seed,
	}
	if f.policy == EvictRandom {
		f.rng = newEvictionRNG(cfg.seed)
	}
	return f, nil
}

// NewWithMemory creates a filter sized to a memory budget of memoryBits,
// deriving the bucket count as memoryBits / (slotsPerBucket*fingerprintBits).
// Returns ErrMemoryTooSmall if the budget cannot hold a single bucket.
func NewWithMemory(memoryBits uint64, slotsPerBucket, fingerprintBits int, opts ...Option) (*Filter, error) {
	if slotsPerBucket <= 0 {
		return nil, qhterrors.ErrZeroSlots
	}
	if fingerprintBits <= 0 {
		return nil, qhterrors.ErrZeroFingerprint
	}
	if fingerprintBits > 64 {
		return nil, fmt.Errorf("%w: %d", qhterrors.ErrFingerprintTooWide, fingerprintBits)
	}
	bucketCount := memoryBits / (uint64(slotsPerBucket) * uint64(fingerprintBits))
	if bucketCount == 0 {
		return nil, fmt.Errorf("%w: %d bits", qhterrors.ErrMemoryTooSmall, memoryBits)
	}
	return New(bucketCount, slotsPerBucket, fingerprintBits, opts...)
}

func fingerprintMask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << bits) - 1
}

func newEvictionRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedMix))
}

// Insert stores the element's fingerprint in the first empty slot of its
// bucket and returns true. When the bucket is full, the configured eviction
// policy applies: EvictNone returns false and stores nothing; EvictRandom
// and EvictFIFO overwrite an existing slot and return true.
//
// Insert does not check whether the fingerprint is already present; callers
// deduplicating a stream should use TestAndInsert.
func (f *Filter) Insert(element []byte) bool {
	bucket, fp := f.split.split(element)
	return f.insert(bucket, fp)
}

// InsertString is Insert for string elements, without allocating.
func (f *Filter) InsertString(element string) bool {
	bucket, fp := f.split.splitString(element)
	return f.insert(bucket, fp)
}

// InsertUint64 is Insert for integer elements.
func (f *Filter) InsertUint64(element uint64) bool {
	bucket, fp := f.split.splitUint64(element)
	return f.insert(bucket, fp)
}

// Lookup reports whether the element's fingerprint is stored in its bucket.
// It never mutates the filter. A true result may be a false positive; a
// false result is definitive unless the element was evicted or dropped.
func (f *Filter) Lookup(element []byte) bool {
	bucket, fp := f.split.split(element)
	return f.contains(bucket, fp)
}

// LookupString is Lookup for string elements, without allocating.
func (f *Filter) LookupString(element string) bool {
	bucket, fp := f.split.splitString(element)
	return f.contains(bucket, fp)
}

// LookupUint64 is Lookup for integer elements.
func (f *Filter) LookupUint64(element uint64) bool {
	bucket, fp := f.split.splitUint64(element)
	return f.contains(bucket, fp)
}

// TestAndInsert reports whether the element was already present, inserting
// it when it was not. This is the streaming dedup primitive: a false return
// means "first sighting" (subject to the false positive rate, a true return
// may misreport a first sighting as a duplicate).
func (f *Filter) TestAndInsert(element []byte) bool {
	bucket, fp := f.split.split(element)
	return f.testAndInsert(bucket, fp)
}

// TestAndInsertString is TestAndInsert for string elements.
func (f *Filter) TestAndInsertString(element string) bool {
	bucket, fp := f.split.splitString(element)
	return f.testAndInsert(bucket, fp)
}

// TestAndInsertUint64 is TestAndInsert for integer elements.
func (f *Filter) TestAndInsertUint64(element uint64) bool {
	bucket, fp := f.split.splitUint64(element)
	return f.testAndInsert(bucket, fp)
}

func (f *Filter) testAndInsert(bucket, fp uint64) bool {
	if f.contains(bucket, fp) {
		return true
	}
	f.insert(bucket, fp)
	return false
}

func (f *Filter) contains(bucket, fp uint64) bool {
	base := bucket * uint64(f.width)
	for i := 0; i < f.width; i++ {
		if f.slots.Get(base+uint64(i)) == fp {
			return true
		}
	}
	return false
}

func (f *Filter) insert(bucket, fp uint64) bool {
	base := bucket * uint64(f.width)
	for i := 0; i < f.width; i++ {
		if f.slots.Get(base+uint64(i)) == 0 {
			f.slots.Set(base+uint64(i), fp)
			f.count++
			return true
		}
	}

	switch f.policy {
	case EvictRandom:
		f.slots.Set(base+uint64(f.rng.IntN(f.width)), fp)
	case EvictFIFO:
		for i := 1; i < f.width; i++ {
			f.slots.Set(base+uint64(i-1), f.slots.Get(base+uint64(i)))
		}
		f.slots.Set(base+uint64(f.width-1), fp)
	default:
		return false
	}
	f.count++
	return true
}

// Reset zeroes the filter, forgetting every element. Parameters, seed and
// storage are retained; the eviction generator restarts from the seed so a
// reset filter replays identically to a fresh one.
func (f *Filter) Reset() {
	f.slots.Reset()
	f.count = 0
	if f.policy == EvictRandom {
		f.rng = newEvictionRNG(f.seed)
	}
}

// BucketCount returns the number of addressable buckets.
func (f *Filter) BucketCount() uint64 { return f.buckets }

// SlotsPerBucket returns the number of fingerprint slots per bucket.
func (f *Filter) SlotsPerBucket() int { return f.width }

// FingerprintBits returns the fingerprint width in bits.
func (f *Filter) FingerprintBits() int { return f.fpBits }

// SizeBits returns the total storage size in bits:
// BucketCount * SlotsPerBucket * FingerprintBits.
func (f *Filter) SizeBits() uint64 { return f.slots.SizeBits() }

// Count returns the number of accepted inserts since the last reset.
// Evicting inserts count; drops under EvictNone do not.
func (f *Filter) Count() uint64 { return f.count }

// FillRatio returns the fraction of occupied slots.
func (f *Filter) FillRatio() float64 {
	var occupied uint64
	for i := uint64(0); i < f.slots.Len(); i++ {
		if f.slots.Get(i) != 0 {
			occupied++
		}
	}
	return float64(occupied) / float64(f.slots.Len())
}
