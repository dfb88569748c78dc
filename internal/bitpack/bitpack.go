// Package bitpack implements a fixed-length vector of equal-width slots
// packed into 64-bit words.
//
// A slot is addressed by its index; its value occupies Width consecutive
// bits starting at index*Width, in little-endian word order. Reads and
// writes touch at most two words regardless of alignment, using shift/mask
// operations only.
package bitpack

// Vector is a fixed-length sequence of slots, each Width bits wide.
// The total bit size is fixed at construction and never reallocated.
type Vector struct {
	words []uint64
	mask  uint64
	width uint
	n     uint64
}

// New returns a zeroed vector of n slots, each width bits wide.
// width must be in [1, 64].
func New(n uint64, width uint) *Vector {
	if width == 0 || width > 64 {
		panic("bitpack: slot width out of range")
	}
	totalBits := n * uint64(width)
	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}
	return &Vector{
		words: make([]uint64, (totalBits+63)/64),
		mask:  mask,
		width: width,
		n:     n,
	}
}

// Len returns the number of slots.
func (v *Vector) Len() uint64 { return v.n }

// Width returns the slot width in bits.
func (v *Vector) Width() uint { return v.width }

// SizeBits returns the total bit size of the vector.
func (v *Vector) SizeBits() uint64 { return v.n * uint64(v.width) }

// Get extracts the value of slot i. i must be < Len.
func (v *Vector) Get(i uint64) uint64 {
	bit := i * uint64(v.width)
	word := bit >> 6
	off := uint(bit & 63)

	val := v.words[word] >> off
	if off+v.width > 64 {
		val |= v.words[word+1] << (64 - off)
	}
	return val & v.mask
}

// Set writes x into slot i without disturbing neighboring slots.
// i must be < Len. x must fit in Width bits; wider values are masked.
func (v *Vector) Set(i uint64, x uint64) {
	x &= v.mask
	bit := i * uint64(v.width)
	word := bit >> 6
	off := uint(bit & 63)

	v.words[word] = v.words[word]&^(v.mask<<off) | x<<off
	if off+v.width > 64 {
		spill := 64 - off
		v.words[word+1] = v.words[word+1]&^(v.mask>>spill) | x>>spill
	}
}

// Reset zeroes every slot. The allocation is retained.
func (v *Vector) Reset() {
	clear(v.words)
}
