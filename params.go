package qht

import "math"

// EstimateFalsePositiveRate returns the expected false positive probability
// of a lookup against a bucket holding slotsPerBucket independent
// fingerprints of fingerprintBits bits each:
//
//	1 - (1 - 2^-F)^S
//
// The estimate assumes a full bucket; partially filled buckets do better.
// Returns 0 for non-positive parameters.
func EstimateFalsePositiveRate(fingerprintBits, slotsPerBucket int) float64 {
	if fingerprintBits <= 0 || slotsPerBucket <= 0 {
		return 0
	}
	p := math.Pow(2, -float64(fingerprintBits))
	return 1 - math.Pow(1-p, float64(slotsPerBucket))
}
