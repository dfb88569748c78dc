package qht

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	qhterrors "github.com/tamirms/qht/errors"
)

// HashAlgorithmID identifies the hash function used to derive bucket
// indexes and fingerprints from elements.
type HashAlgorithmID uint16

const (
	// AlgoXXH3 uses the 128-bit seeded xxHash3. This is the default.
	AlgoXXH3 HashAlgorithmID = 0

	// AlgoXXHash uses two seeded xxHash64 digests.
	AlgoXXHash HashAlgorithmID = 1

	// AlgoMurmur3 uses the 128-bit seeded MurmurHash3.
	AlgoMurmur3 HashAlgorithmID = 2
)

// String returns the algorithm name.
func (a HashAlgorithmID) String() string {
	switch a {
	case AlgoXXH3:
		return "xxh3"
	case AlgoXXHash:
		return "xxhash"
	case AlgoMurmur3:
		return "murmur3"
	default:
		return "unknown"
	}
}

// hasher produces two independent 64-bit hash halves for an element.
// The same element and seed must always yield the same pair; a filter
// relies on this symmetry between Insert and Lookup.
type hasher interface {
	pair(key []byte, seed uint64) (uint64, uint64)
	pairString(key string, seed uint64) (uint64, uint64)
}

// newHasher creates the hasher for an algorithm ID.
// Returns an error if the algorithm ID is unknown.
func newHasher(id HashAlgorithmID) (hasher, error) {
	switch id {
	case AlgoXXH3:
		return xxh3Hasher{}, nil
	case AlgoXXHash:
		return xxhashHasher{}, nil
	case AlgoMurmur3:
		return murmur3Hasher{}, nil
	}
	return nil, fmt.Errorf("%w: %d", qhterrors.ErrUnknownHashAlgo, id)
}

type xxh3Hasher struct{}

func (xxh3Hasher) pair(key []byte, seed uint64) (uint64, uint64) {
	h := xxh3.Hash128Seed(key, seed)
	return h.Lo, h.Hi
}

func (xxh3Hasher) pairString(key string, seed uint64) (uint64, uint64) {
	h := xxh3.HashString128Seed(key, seed)
	return h.Lo, h.Hi
}

// seedMix separates the two digest streams derived from a single seed.
// It is the splitmix64 increment constant; any odd constant would do.
const seedMix = 0x9e3779b97f4a7c15

type xxhashHasher struct{}

func (xxhashHasher) pair(key []byte, seed uint64) (uint64, uint64) {
	return xxhashSum(key, seed), xxhashSum(key, seed^seedMix)
}

func (xxhashHasher) pairString(key string, seed uint64) (uint64, uint64) {
	return xxhashSumString(key, seed), xxhashSumString(key, seed^seedMix)
}

// xxhashSum folds the seed into the digest stream ahead of the key, since
// xxhash/v2 exposes no seeded entry point.
func xxhashSum(key []byte, seed uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write(buf[:])
	_, _ = d.Write(key)
	return d.Sum64()
}

func xxhashSumString(key string, seed uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(key)
	return d.Sum64()
}

type murmur3Hasher struct{}

func (murmur3Hasher) pair(key []byte, seed uint64) (uint64, uint64) {
	return murmur3.Sum128WithSeed(key, foldSeed(seed))
}

func (murmur3Hasher) pairString(key string, seed uint64) (uint64, uint64) {
	return murmur3.Sum128WithSeed([]byte(key), foldSeed(seed))
}

// foldSeed reduces a 64-bit seed to murmur3's 32-bit seed space.
func foldSeed(seed uint64) uint32 {
	return uint32(seed ^ seed>>32)
}
