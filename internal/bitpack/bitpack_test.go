package bitpack

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

var testWidths = []uint{1, 3, 5, 7, 8, 12, 16, 24, 31, 32, 33, 48, 63, 64}

func widthMask(width uint) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// TestVectorSetGet cross-checks random writes against a plain reference
// slice, for widths that land on and off word boundaries.
func TestVectorSetGet(t *testing.T) {
	rng := newTestRNG(t)
	const n = 257

	for _, width := range testWidths {
		v := New(n, width)
		ref := make([]uint64, n)
		mask := widthMask(width)

		for iter := 0; iter < 4000; iter++ {
			i := rng.Uint64N(n)
			x := rng.Uint64() & mask
			v.Set(i, x)
			ref[i] = x
		}

		for i := uint64(0); i < n; i++ {
			if got := v.Get(i); got != ref[i] {
				t.Fatalf("width %d: slot %d = 0x%X, want 0x%X", width, i, got, ref[i])
			}
		}
	}
}

// TestVectorNeighborIsolation verifies that rewriting one slot leaves every
// other slot untouched, including slots sharing a word with it.
func TestVectorNeighborIsolation(t *testing.T) {
	rng := newTestRNG(t)
	const n = 101

	for _, width := range testWidths {
		v := New(n, width)
		ref := make([]uint64, n)
		mask := widthMask(width)

		for i := uint64(0); i < n; i++ {
			ref[i] = rng.Uint64() & mask
			v.Set(i, ref[i])
		}

		for iter := 0; iter < 500; iter++ {
			i := rng.Uint64N(n)
			ref[i] = rng.Uint64() & mask
			v.Set(i, ref[i])

			for j := uint64(0); j < n; j++ {
				if got := v.Get(j); got != ref[j] {
					t.Fatalf("width %d: writing slot %d disturbed slot %d: got 0x%X, want 0x%X",
						width, i, j, got, ref[j])
				}
			}
		}
	}
}

// TestVectorMasking verifies that values wider than the slot are masked on
// write rather than corrupting neighbors.
func TestVectorMasking(t *testing.T) {
	v := New(10, 4)
	v.Set(3, 0xFFFF)
	if got := v.Get(3); got != 0xF {
		t.Errorf("Get(3) = 0x%X, want 0xF", got)
	}
	for _, i := range []uint64{2, 4} {
		if got := v.Get(i); got != 0 {
			t.Errorf("Get(%d) = 0x%X, want 0", i, got)
		}
	}
}

func TestVectorReset(t *testing.T) {
	rng := newTestRNG(t)
	v := New(64, 9)
	for i := uint64(0); i < v.Len(); i++ {
		v.Set(i, rng.Uint64()&widthMask(9))
	}

	v.Reset()

	for i := uint64(0); i < v.Len(); i++ {
		if got := v.Get(i); got != 0 {
			t.Fatalf("Get(%d) = 0x%X after Reset, want 0", i, got)
		}
	}
}

func TestVectorGeometry(t *testing.T) {
	v := New(341, 3)
	if v.Len() != 341 {
		t.Errorf("Len() = %d, want 341", v.Len())
	}
	if v.Width() != 3 {
		t.Errorf("Width() = %d, want 3", v.Width())
	}
	if v.SizeBits() != 1023 {
		t.Errorf("SizeBits() = %d, want 1023", v.SizeBits())
	}
}

func TestVectorWidthPanics(t *testing.T) {
	for _, width := range []uint{0, 65} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(8, %d) did not panic", width)
				}
			}()
			New(8, width)
		}()
	}
}
