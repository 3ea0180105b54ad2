package soomask

import (
	"github.com/astef/soomask/internal/block"
)

// Clear sets every bit to 0.
func (m *Mask) Clear() {
	switch m.repr {
	case reprHeap:
		fillWords(m.blocks, 0)
	default:
		m.small = 0
	}
}

// Fill sets every bit to 1. Padding past Len() in the last word stays 0.
func (m *Mask) Fill() {
	if m.len == 0 {
		return
	}
	switch m.repr {
	case reprHeap:
		last := len(m.blocks) - 1
		fillWords(m.blocks[:last], block.Filled)
		m.blocks[last] = block.Low(m.tail)
	default:
		m.small = block.Low(m.len)
	}
}

// And keeps the bits that are set in both m and src. src is treated as
// zero-extended, so every bit of m past src.Len() is cleared.
func (m *Mask) And(src *Mask) {
	switch m.repr {
	case reprHeap:
		switch src.repr {
		case reprHeap:
			n := min(len(m.blocks), len(src.blocks))
			for i := 0; i < n; i++ {
				m.blocks[i] &= src.blocks[i]
			}
			fillWords(m.blocks[n:], 0)
		default:
			m.blocks[0] &= src.small
			fillWords(m.blocks[1:], 0)
		}
	default:
		m.small &= src.first()
	}
}

// Or sets every bit of m that is set in src. Bits of src past m.Len() are
// ignored.
func (m *Mask) Or(src *Mask) {
	switch m.repr {
	case reprHeap:
		switch src.repr {
		case reprHeap:
			n := min(len(m.blocks), len(src.blocks))
			for i := 0; i < n; i++ {
				m.blocks[i] |= src.blocks[i]
			}
		default:
			m.blocks[0] |= src.small
		}
	default:
		m.small |= src.first()
	}
	m.normalize()
}

// Xor toggles every bit of m that is set in src. Bits of src past m.Len()
// are ignored.
func (m *Mask) Xor(src *Mask) {
	switch m.repr {
	case reprHeap:
		switch src.repr {
		case reprHeap:
			n := min(len(m.blocks), len(src.blocks))
			for i := 0; i < n; i++ {
				m.blocks[i] ^= src.blocks[i]
			}
		default:
			m.blocks[0] ^= src.small
		}
	default:
		m.small ^= src.first()
	}
	m.normalize()
}

// Not inverts every bit of m.
func (m *Mask) Not() {
	switch m.repr {
	case reprHeap:
		last := len(m.blocks) - 1
		for i := 0; i < last; i++ {
			m.blocks[i] ^= block.Filled
		}
		m.blocks[last] ^= block.Low(m.tail)
	default:
		m.small ^= block.Low(m.len)
	}
}
