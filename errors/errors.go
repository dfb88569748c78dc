// Package errors defines all exported error sentinels for the qht library.
//
// This is the single source of truth for error values. Both the top-level
// qht package and internal packages import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrZeroBucketCount    = errors.New("qht: bucket count cannot be zero")
	ErrZeroSlots          = errors.New("qht: slots per bucket cannot be zero")
	ErrZeroFingerprint    = errors.New("qht: fingerprint width cannot be zero")
	ErrFingerprintTooWide = errors.New("qht: fingerprint width exceeds maximum (64 bits)")
	ErrMemoryTooSmall     = errors.New("qht: memory budget is smaller than a single bucket")
	ErrUnknownHashAlgo    = errors.New("qht: unknown hash algorithm ID")
	ErrUnknownEviction    = errors.New("qht: unknown eviction policy")
)
