package soomask

import (
	"math/bits"

	"github.com/astef/soomask/internal/block"
)

// Any reports whether at least one bit is set. False for an empty mask.
func (m *Mask) Any() bool {
	switch m.repr {
	case reprHeap:
		last := len(m.blocks) - 1
		for _, w := range m.blocks[:last] {
			if w != 0 {
				return true
			}
		}
		return m.blocks[last]&block.Low(m.tail) != 0
	default:
		return m.small&block.Low(m.len) != 0
	}
}

// All reports whether every bit is set.
// An empty mask has no set bits, so All is false for it.
func (m *Mask) All() bool {
	if m.len == 0 {
		return false
	}
	switch m.repr {
	case reprHeap:
		last := len(m.blocks) - 1
		for _, w := range m.blocks[:last] {
			if w != block.Filled {
				return false
			}
		}
		tail := block.Low(m.tail)
		return m.blocks[last]&tail == tail
	default:
		full := block.Low(m.len)
		return m.small&full == full
	}
}

// None reports whether no bit is set. True for an empty mask.
func (m *Mask) None() bool {
	return !m.Any()
}

// Count returns the number of set bits.
func (m *Mask) Count() uint {
	switch m.repr {
	case reprHeap:
		last := len(m.blocks) - 1
		n := 0
		for _, w := range m.blocks[:last] {
			n += bits.OnesCount64(w)
		}
		n += bits.OnesCount64(m.blocks[last] & block.Low(m.tail))
		return uint(n)
	default:
		return uint(bits.OnesCount64(m.small & block.Low(m.len)))
	}
}
