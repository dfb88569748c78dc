package qht

import (
	"encoding/binary"

	"github.com/tamirms/qht/internal/bits"
)

// fingerprintRemixer is the WyHash wyp1 constant. Being odd, multiplication
// by this constant is a bijection on uint64, so remixing never loses entropy.
const fingerprintRemixer = 0x517cc1b727220a95

// maxRemixRounds bounds the zero-fingerprint remix loop. With F-bit
// fingerprints each round leaves zero with probability 2^-F, so the
// fallback is effectively unreachable for any practical width.
const maxRemixRounds = 16

// splitter maps an element to a (bucket index, fingerprint) pair.
//
// One seeded 128-bit hash is computed per element. The low half selects the
// bucket via fastrange; the high half, masked to the fingerprint width,
// yields the fingerprint. The two halves share no bits, so index and
// fingerprint stay uncorrelated even at the full 64-bit fingerprint width.
type splitter struct {
	h       hasher
	seed    uint64
	buckets uint64
	fpMask  uint64
}

func (s splitter) split(key []byte) (uint64, uint64) {
	h0, h1 := s.h.pair(key, s.seed)
	return s.place(h0, h1)
}

func (s splitter) splitString(key string) (uint64, uint64) {
	h0, h1 := s.h.pairString(key, s.seed)
	return s.place(h0, h1)
}

func (s splitter) splitUint64(key uint64) (uint64, uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return s.split(buf[:])
}

// place derives the bucket index and a nonzero fingerprint from the two
// hash halves. Zero is reserved to mean "empty slot", so a fingerprint that
// masks to zero is remixed deterministically until it does not.
func (s splitter) place(h0, h1 uint64) (bucket uint64, fp uint64) {
	bucket = bits.FastRange64(h0, s.buckets)
	fp = h1 & s.fpMask
	for r := 0; fp == 0; r++ {
		if r == maxRemixRounds {
			fp = 1
			break
		}
		h1 = h1*fingerprintRemixer + 1
		fp = h1 & s.fpMask
	}
	return bucket, fp
}
