// Package block holds the 64-bit word arithmetic shared by the mask
// representations: how many blocks a bit count needs, how wide the last
// block is and which bits a span of indexes covers.
package block

const Bits = uint(64)

const Filled = ^uint64(0)

// Count returns ceil(bits / Bits) without overflowing near the top of uint.
func Count(bits uint) uint {
	n := bits / Bits
	if bits%Bits != 0 {
		n++
	}
	return n
}

// Tail returns the number of significant bits in the last block:
// 0 for an empty mask, otherwise in range [1 ; Bits].
func Tail(bits uint) uint {
	if bits == 0 {
		return 0
	}
	rem := bits % Bits
	if rem == 0 {
		return Bits
	}
	return rem
}

// Low returns a word with the n lowest bits set, n in range [0 ; Bits].
func Low(n uint) uint64 {
	if n == 0 {
		return 0
	}
	return Filled >> (Bits - n)
}

// Span returns a word with bits lo..hi (inclusive) set, lo <= hi < Bits.
func Span(lo uint, hi uint) uint64 {
	return (Filled >> (Bits - 1 - (hi - lo))) << lo
}

// From returns a word with bits lo..Bits-1 set.
func From(lo uint) uint64 {
	return Filled << lo
}

// Upto returns a word with bits 0..hi (inclusive) set.
func Upto(hi uint) uint64 {
	return Filled >> (Bits - 1 - hi)
}

// Locate splits a bit index into its block index and the singleton mask
// selecting the bit inside that block.
func Locate(index uint) (uint, uint64) {
	return index / Bits, uint64(1) << (index % Bits)
}
