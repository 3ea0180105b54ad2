package soomask

import (
	"fmt"

	"github.com/astef/soomask/internal/block"
)

type wordOp uint8

const (
	opSet wordOp = iota
	opClear
	opFlip
)

func (op wordOp) apply(word uint64, mask uint64) uint64 {
	switch op {
	case opSet:
		return word | mask
	case opClear:
		return word &^ mask
	default:
		return word ^ mask
	}
}

// Get returns the value of the bit at the given index.
func (m *Mask) Get(index uint) (bool, error) {
	if err := m.checkIndex("get", index); err != nil {
		return false, err
	}
	return m.test(index), nil
}

// IsSet is Get for callers that treat a bad index as a programming error:
// it panics instead of returning ErrIndexOutOfRange.
func (m *Mask) IsSet(index uint) bool {
	if !m.unchecked {
		checkBounds(m.len, index)
	}
	return m.test(index)
}

// Set sets (value == true) or clears the bit at the given index.
func (m *Mask) Set(index uint, value bool) error {
	if err := m.checkIndex("set", index); err != nil {
		return err
	}
	if value {
		m.update(opSet, index)
	} else {
		m.update(opClear, index)
	}
	return nil
}

// Flip toggles the bit at the given index.
func (m *Mask) Flip(index uint) error {
	if err := m.checkIndex("flip", index); err != nil {
		return err
	}
	m.update(opFlip, index)
	return nil
}

// SetRange sets or clears every bit in the inclusive range [start ; end].
// start == end touches exactly one bit.
func (m *Mask) SetRange(start uint, end uint, value bool) error {
	if err := m.checkRange("set range", start, end); err != nil {
		return err
	}
	if value {
		m.updateRange(opSet, start, end)
	} else {
		m.updateRange(opClear, start, end)
	}
	return nil
}

// ClearRange clears every bit in the inclusive range [start ; end].
func (m *Mask) ClearRange(start uint, end uint) error {
	return m.SetRange(start, end, false)
}

// FillRange sets every bit in the inclusive range [start ; end].
func (m *Mask) FillRange(start uint, end uint) error {
	return m.SetRange(start, end, true)
}

// FlipRange toggles every bit in the inclusive range [start ; end].
func (m *Mask) FlipRange(start uint, end uint) error {
	if err := m.checkRange("flip range", start, end); err != nil {
		return err
	}
	m.updateRange(opFlip, start, end)
	return nil
}

func (m *Mask) test(index uint) bool {
	switch m.repr {
	case reprHeap:
		blk, bit := block.Locate(index)
		return m.blocks[blk]&bit != 0
	default:
		return m.small&(uint64(1)<<index) != 0
	}
}

func (m *Mask) update(op wordOp, index uint) {
	switch m.repr {
	case reprHeap:
		blk, bit := block.Locate(index)
		m.blocks[blk] = op.apply(m.blocks[blk], bit)
	default:
		m.small = op.apply(m.small, uint64(1)<<index)
	}
}

func (m *Mask) updateRange(op wordOp, start uint, end uint) {
	switch m.repr {
	case reprHeap:
		first, last := start/block.Bits, end/block.Bits
		lo, hi := start%block.Bits, end%block.Bits
		if first == last {
			m.blocks[first] = op.apply(m.blocks[first], block.Span(lo, hi))
			return
		}

		// head: lo..63 of the first block
		m.blocks[first] = op.apply(m.blocks[first], block.From(lo))

		// whole blocks in between, possibly none
		interior := m.blocks[first+1 : last]
		switch op {
		case opSet:
			fillWords(interior, block.Filled)
		case opClear:
			fillWords(interior, 0)
		default:
			for i := range interior {
				interior[i] ^= block.Filled
			}
		}

		// tail: 0..hi of the last block
		m.blocks[last] = op.apply(m.blocks[last], block.Upto(hi))
	default:
		m.small = op.apply(m.small, block.Span(start, end))
	}
}

func fillWords(words []uint64, value uint64) {
	for i := range words {
		words[i] = value
	}
}

func checkBounds(len uint, index uint) {
	if index >= len {
		panic(fmt.Sprintf("index out of range [%v] with length %v", index, len))
	}
}
